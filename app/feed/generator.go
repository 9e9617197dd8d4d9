package feed

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Generator is the generation entry point. One Run covers a single feed:
// load the cache record, select items, decide reuse or regeneration,
// and persist the result. The cache record is written before the output
// file, and a failed regeneration never touches the output file.
type Generator struct {
	cache     *Cache
	selector  *Selector
	validator *Validator
	renderer  *Renderer
	assembler *Assembler
	outputDir string
}

func NewGenerator(cacheDir, outputDir string, location *time.Location) *Generator {
	return &Generator{
		cache:     NewCache(cacheDir),
		selector:  NewSelector(),
		validator: NewValidator(),
		renderer:  NewRenderer(),
		assembler: NewAssembler(location),
		outputDir: outputDir,
	}
}

func (g *Generator) Run(ctx context.Context, req Request) (*Result, error) {
	config := req.Config

	record, err := g.cache.Load(config.TargetPath)
	if err != nil {
		// Unreadable cache is not fatal: regenerate from scratch.
		slog.Warn("Cache record unreadable, regenerating", "feed", config.Name, "error", err)
		record = nil
	}

	items := g.selector.Run(req.Items, req.Exclude)

	if g.validator.Run(record, config, items, req.LastGenerated) {
		if err := g.writeOutput(config.TargetPath, record.Feed); err != nil {
			return nil, err
		}

		slog.Debug("Feed reused from cache", "feed", config.Name, "items", record.ItemCount)
		return &Result{Feed: record.Feed, ItemCount: record.ItemCount, Reused: true}, nil
	}

	entries, err := g.renderer.Run(ctx, items, req.Mutate, config, req.Site)
	if err != nil {
		return nil, err
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}

	document := g.assembler.Run(config, req.Site, entries, date, req.FormattedDate)
	text, err := document.Serialize(config.Indented)
	if err != nil {
		return nil, err
	}

	if err := g.cache.Store(CacheRecord{Config: config, Feed: text, ItemCount: len(entries)}); err != nil {
		return nil, err
	}

	if err := g.writeOutput(config.TargetPath, text); err != nil {
		return nil, err
	}

	slog.Info("Feed generated", "feed", config.Name, "target", config.TargetPath, "items", len(entries))
	return &Result{Feed: text, ItemCount: len(entries), Reused: false}, nil
}

// OutputPath resolves a feed target path inside the output directory.
func (g *Generator) OutputPath(targetPath string) string {
	return filepath.Join(g.outputDir, filepath.FromSlash(targetPath))
}

func (g *Generator) writeOutput(targetPath, text string) error {
	outputPath := g.OutputPath(targetPath)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(outputPath, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write feed output: %w", err)
	}

	return nil
}
