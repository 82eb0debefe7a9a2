package model

import "time"

// Axis is a strategic grouping of topics (e.g. "Economia", "Direitos
// Sociais"). Axes are loaded from the curated agenda and rarely change.
type Axis struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Topic groups propositions under one area of interest (e.g. "Educação").
// Deleting a topic cascades to its propositions.
type Topic struct {
	ID        int64
	AxisID    int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
