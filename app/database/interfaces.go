package database

import (
	"time"
)

type RunRepository interface {
	RecordRun(run Run) error

	// GetLastGeneratedAt returns the timestamp of the feed's most recent
	// successful generation, or nil when the feed has never been generated.
	GetLastGeneratedAt(feedName string) (*time.Time, error)

	GetRecentRuns(feedName string, limit int) ([]Run, error)
	GetRunCount() (int, error)
}
