package service

import (
	"time"
)

// RateLimiter enforces a minimum interval between requests to one upstream.
// Each client owns its own limiter; the two chambers are throttled
// independently. Batch runs are single-threaded, so access is single-writer;
// a mutex would be needed before introducing concurrent fetch workers.
type RateLimiter struct {
	minInterval time.Duration
	last        time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewRateLimiter creates a limiter allowing ratePerSecond requests.
func NewRateLimiter(ratePerSecond float64) *RateLimiter {
	interval := time.Duration(0)
	if ratePerSecond > 0 {
		interval = time.Duration(float64(time.Second) / ratePerSecond)
	}
	return &RateLimiter{
		minInterval: interval,
		now:         time.Now,
		sleep:       time.Sleep,
	}
}

// Wait blocks until the minimum interval since the previous request has
// elapsed, then records the current time as the new reference point.
func (r *RateLimiter) Wait() {
	if !r.last.IsZero() {
		elapsed := r.now().Sub(r.last)
		if elapsed < r.minInterval {
			r.sleep(r.minInterval - elapsed)
		}
	}
	r.last = r.now()
}
