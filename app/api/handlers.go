package api

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/sitecast/sitecast/app/database"
	"github.com/sitecast/sitecast/app/feed"
	"github.com/sitecast/sitecast/app/tasks"
)

func NewHandler(configCache *feed.ConfigCache, runRepo database.RunRepository,
	scheduler tasks.TaskSchedulerInterface, taskFactory TaskFactory, outputDir string) *Handler {
	return &Handler{
		configCache: configCache,
		runRepo:     runRepo,
		scheduler:   scheduler,
		taskFactory: taskFactory,
		outputDir:   outputDir,
	}
}

func (h *Handler) GetFeed(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	feedConfig, err := h.configCache.GetConfig(name)
	if err != nil {
		slog.Error("Feed configuration not found", "feed", name, "error", err)
		c.Status(http.StatusNotFound)
		return
	}

	outputPath := filepath.Join(h.outputDir, filepath.FromSlash(feedConfig.TargetPath))
	data, err := os.ReadFile(outputPath)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Error("Feed not generated yet", "feed", name, "target", feedConfig.TargetPath)
			c.Status(http.StatusNotFound)
			return
		}
		slog.Error("Failed to read generated feed", "feed", name, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	c.String(http.StatusOK, string(data))
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) GetStats(c *gin.Context) {
	runCount, err := h.runRepo.GetRunCount()
	if err != nil {
		slog.Error("Database error", "operation", "run_count", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"feeds": h.configCache.GetConfigCount(),
		"runs":  runCount,
	})
}

func (h *Handler) GetFeedStatus(c *gin.Context) {
	name := c.Param("name")

	feedConfig, err := h.configCache.GetConfig(name)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	runs, err := h.runRepo.GetRecentRuns(name, 10)
	if err != nil {
		slog.Error("Database error", "operation", "recent_runs", "feed", name, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	response := FeedStatusResponse{
		Name:       feedConfig.Name,
		TargetPath: feedConfig.TargetPath,
		Title:      feedConfig.Title,
		Runs:       make([]RunResponse, 0, len(runs)),
	}
	for _, run := range runs {
		response.Runs = append(response.Runs, RunResponse{
			ItemCount:   run.ItemCount,
			Reused:      run.Reused,
			DurationMs:  run.Duration.Milliseconds(),
			GeneratedAt: run.GeneratedAt,
		})
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) RegenerateFeed(c *gin.Context) {
	name := c.Param("name")

	feedConfig, err := h.configCache.GetConfig(name)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	if err := h.scheduler.EnqueueTask(h.taskFactory(feedConfig)); err != nil {
		slog.Error("Failed to enqueue regeneration", "feed", name, "error", err)
		c.Status(http.StatusServiceUnavailable)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "scheduled", "feed": name})
}
