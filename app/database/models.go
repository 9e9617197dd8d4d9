package database

import (
	"time"
)

// Run records one feed generation invocation.
type Run struct {
	ID          int64
	FeedName    string
	TargetPath  string
	ItemCount   int
	Reused      bool
	Duration    time.Duration
	GeneratedAt time.Time
}
