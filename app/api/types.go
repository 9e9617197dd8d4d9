package api

import (
	"time"

	"github.com/sitecast/sitecast/app/database"
	"github.com/sitecast/sitecast/app/feed"
	"github.com/sitecast/sitecast/app/tasks"
)

// TaskFactory builds a regeneration task for a feed; main wires it so the
// handler does not carry the generator's dependencies.
type TaskFactory func(feedConfig *feed.Config) tasks.TaskInterface

type Handler struct {
	configCache *feed.ConfigCache
	runRepo     database.RunRepository
	scheduler   tasks.TaskSchedulerInterface
	taskFactory TaskFactory
	outputDir   string
}

type RunResponse struct {
	ItemCount   int       `json:"item_count"`
	Reused      bool      `json:"reused"`
	DurationMs  int64     `json:"duration_ms"`
	GeneratedAt time.Time `json:"generated_at"`
}

type FeedStatusResponse struct {
	Name       string        `json:"name"`
	TargetPath string        `json:"target_path"`
	Title      string        `json:"title"`
	Runs       []RunResponse `json:"runs"`
}
