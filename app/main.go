package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sitecast/sitecast/app/api"
	"github.com/sitecast/sitecast/app/cfg"
	"github.com/sitecast/sitecast/app/content"
	"github.com/sitecast/sitecast/app/database"
	"github.com/sitecast/sitecast/app/feed"
	"github.com/sitecast/sitecast/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting sitecast", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open run history database:", err)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	slog.Debug("Database migrations applied", "version", version, "dirty", dirty)

	site, err := content.LoadSite(appCfg.SiteFile)
	if err != nil {
		log.Fatal("Failed to load site metadata:", err)
	}

	contentStore := content.NewStore(appCfg.ContentDir)
	if err := contentStore.Run(); err != nil {
		log.Fatal("Failed to load content items:", err)
	}
	slog.Info("Content loaded", "items", contentStore.GetItemCount())

	configCache := feed.NewConfigCache(appCfg.FeedsDir)
	if err := configCache.Run(); err != nil {
		log.Fatal("Failed to load feed configurations:", err)
	}
	slog.Info("Feed configurations loaded", "feeds", configCache.GetConfigCount())

	generator := feed.NewGenerator(appCfg.CacheDir, appCfg.OutputDir, appCfg.Location())
	verifier := feed.NewVerifier()
	runRepo := database.NewRunRepository(db)

	// One-shot generation pass over every configured feed.
	failed := 0
	for _, feedConfig := range configCache.GetConfigs() {
		task := tasks.NewGenerateFeedTask(feedConfig.Name, feedConfig, generator,
			verifier, contentStore, site, runRepo)
		task.Start()
		if err := task.Execute(context.Background()); err != nil {
			slog.Error("Feed generation failed", "feed", feedConfig.Name, "error", err)
			failed++
		}
	}

	if !appCfg.Serve {
		if failed > 0 {
			os.Exit(1)
		}
		return
	}

	scheduler := tasks.NewScheduler(configCache, contentStore, site, generator, verifier, runRepo)
	scheduler.Start()
	defer scheduler.Stop()

	taskFactory := func(feedConfig *feed.Config) tasks.TaskInterface {
		return tasks.NewGenerateFeedTask(feedConfig.Name, feedConfig, generator,
			verifier, contentStore, site, runRepo)
	}

	handler := api.NewHandler(configCache, runRepo, scheduler, taskFactory, appCfg.OutputDir)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}
}
