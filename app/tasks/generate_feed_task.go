package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sitecast/sitecast/app/content"
	"github.com/sitecast/sitecast/app/database"
	"github.com/sitecast/sitecast/app/feed"
)

type GenerateFeedTask struct {
	Task
	FeedConfig   *feed.Config
	generator    *feed.Generator
	verifier     *feed.Verifier
	contentStore *content.Store
	site         content.Site
	runRepo      database.RunRepository
}

func NewGenerateFeedTask(feedName string, feedConfig *feed.Config, generator *feed.Generator,
	verifier *feed.Verifier, contentStore *content.Store, site content.Site,
	runRepo database.RunRepository) *GenerateFeedTask {
	return &GenerateFeedTask{
		Task:         NewTask(TaskTypeGenerateFeed, feedName),
		FeedConfig:   feedConfig,
		generator:    generator,
		verifier:     verifier,
		contentStore: contentStore,
		site:         site,
		runRepo:      runRepo,
	}
}

func (t *GenerateFeedTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	lastGenerated, err := t.runRepo.GetLastGeneratedAt(t.FeedName)
	if err != nil {
		slog.Warn("Failed to load last generation time, treating as first run", "feed", t.FeedName, "error", err)
		lastGenerated = nil
	}

	generatedAt := time.Now()

	result, err := t.generator.Run(ctx, feed.Request{
		Config:        *t.FeedConfig,
		Site:          t.site,
		Items:         t.contentStore.GetItems(),
		LastGenerated: lastGenerated,
		Date:          generatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to generate feed: %w", err)
	}

	if !result.Reused {
		if err := t.verifier.Run(result.Feed); err != nil {
			return fmt.Errorf("feed verification failed: %w", err)
		}
	}

	err = t.runRepo.RecordRun(database.Run{
		FeedName:    t.FeedName,
		TargetPath:  t.FeedConfig.TargetPath,
		ItemCount:   result.ItemCount,
		Reused:      result.Reused,
		Duration:    t.GetDuration(),
		GeneratedAt: generatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	slog.Info("Task completed",
		"type", "GenerateFeed",
		"feed", t.FeedName,
		"duration", t.GetDuration(),
		"items", result.ItemCount,
		"reused", result.Reused)

	return nil
}
