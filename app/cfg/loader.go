package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Content pipeline paths
	ContentDir string `long:"content-dir" env:"CONTENT_DIR" default:"./content" description:"Directory containing content item files"`
	FeedsDir   string `long:"feeds-dir" env:"FEEDS_DIR" default:"./feeds" description:"Directory containing feed configuration files"`
	OutputDir  string `long:"output-dir" env:"OUTPUT_DIR" default:"./output" description:"Directory for generated feed output"`
	CacheDir   string `long:"cache-dir" env:"CACHE_DIR" default:"./.cache" description:"Directory for feed generation cache records"`
	SiteFile   string `long:"site-file" env:"SITE_FILE" default:"./site.yml" description:"Site metadata file"`
	DBPath     string `long:"db-path" env:"DB_PATH" default:"./sitecast.db" description:"SQLite database file for generation run history"`

	// Server configuration
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl      string `long:"base-url" env:"BASE_URL" description:"Public base URL for served feeds (e.g., https://feeds.example.com)"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// Scheduler configuration
	WorkerCount       int `long:"worker-count" env:"WORKER_COUNT" default:"5" description:"Number of background workers for feed generation"`
	SchedulerInterval int `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"300" description:"Regeneration check interval in seconds"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for feed timestamps (e.g., UTC, America/New_York)"`
	Serve    bool   `long:"serve" env:"SERVE" description:"Keep running after generation: serve feeds and regenerate periodically"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		ContentDir:        raw.ContentDir,
		FeedsDir:          raw.FeedsDir,
		OutputDir:         raw.OutputDir,
		CacheDir:          raw.CacheDir,
		SiteFile:          raw.SiteFile,
		DBPath:            raw.DBPath,
		Port:              raw.Port,
		BaseUrl:           raw.BaseUrl,
		APIAccessKey:      raw.APIAccessKey,
		WorkerCount:       raw.WorkerCount,
		SchedulerInterval: raw.SchedulerInterval,
		Timezone:          raw.Timezone,
		Serve:             raw.Serve,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// Location resolves the configured timezone, falling back to UTC when the
// name cannot be loaded.
func (c *Cfg) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
