package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock drives a limiter deterministically: now advances only when the
// test says so, and sleeps are recorded instead of performed.
type fakeClock struct {
	current time.Time
	slept   []time.Duration
}

func (c *fakeClock) now() time.Time { return c.current }

func (c *fakeClock) sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.current = c.current.Add(d)
}

func newTestLimiter(ratePerSecond float64) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{current: time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)}
	limiter := NewRateLimiter(ratePerSecond)
	limiter.now = clock.now
	limiter.sleep = clock.sleep
	return limiter, clock
}

func TestRateLimiterFirstCallDoesNotSleep(t *testing.T) {
	limiter, clock := newTestLimiter(10)

	limiter.Wait()

	assert.Empty(t, clock.slept)
}

func TestRateLimiterThrottlesBackToBackCalls(t *testing.T) {
	limiter, clock := newTestLimiter(10)

	limiter.Wait()
	limiter.Wait()

	// 10 rps means 100ms between requests; no time passed between calls.
	assert.Equal(t, []time.Duration{100 * time.Millisecond}, clock.slept)
}

func TestRateLimiterSleepsOnlyTheRemainder(t *testing.T) {
	limiter, clock := newTestLimiter(10)

	limiter.Wait()
	clock.current = clock.current.Add(60 * time.Millisecond)
	limiter.Wait()

	assert.Equal(t, []time.Duration{40 * time.Millisecond}, clock.slept)
}

func TestRateLimiterNoSleepAfterLongGap(t *testing.T) {
	limiter, clock := newTestLimiter(10)

	limiter.Wait()
	clock.current = clock.current.Add(time.Second)
	limiter.Wait()

	assert.Empty(t, clock.slept)
}

func TestRateLimiterZeroRateNeverSleeps(t *testing.T) {
	limiter, clock := newTestLimiter(0)

	limiter.Wait()
	limiter.Wait()
	limiter.Wait()

	assert.Empty(t, clock.slept)
}
