package content

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Store loads content items from YAML files in a content directory.
// Each *.yml file describes one item; the item path is the file path
// relative to the content directory, without extension.
type Store struct {
	contentDir string
	items      []Item
	mu         sync.RWMutex
}

func NewStore(contentDir string) *Store {
	return &Store{contentDir: contentDir}
}

type rawItem struct {
	Title        string           `yaml:"title"`
	Description  string           `yaml:"description"`
	Body         string           `yaml:"body"`
	Date         time.Time        `yaml:"date"`
	LastModified *time.Time       `yaml:"last_modified"`
	Audio        *Audio           `yaml:"audio"`
	Podcast      *PodcastMetadata `yaml:"podcast"`
}

func (s *Store) Run() error {
	if _, err := os.Stat(s.contentDir); os.IsNotExist(err) {
		return nil
	}

	var items []Item
	err := filepath.WalkDir(s.contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".yml") {
			return nil
		}

		item, err := s.loadItem(path)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", path, err)
		}

		items = append(items, item)
		slog.Debug("Content item loaded", "path", item.Path, "date", item.Date)
		return nil
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items

	return nil
}

func (s *Store) GetItems() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	itemsCopy := make([]Item, len(s.items))
	copy(itemsCopy, s.items)
	return itemsCopy
}

func (s *Store) GetItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) loadItem(file string) (Item, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return Item{}, fmt.Errorf("failed to read file: %w", err)
	}

	var raw rawItem
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Item{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	rel, err := filepath.Rel(s.contentDir, file)
	if err != nil {
		return Item{}, fmt.Errorf("failed to resolve item path: %w", err)
	}

	item := Item{
		Path:        strings.TrimSuffix(filepath.ToSlash(rel), ".yml"),
		Title:       raw.Title,
		Description: raw.Description,
		Body:        raw.Body,
		Date:        raw.Date,
		Audio:       raw.Audio,
		Podcast:     raw.Podcast,
	}

	info, err := os.Stat(file)
	if err != nil {
		return Item{}, fmt.Errorf("failed to stat file: %w", err)
	}

	if raw.LastModified != nil {
		item.LastModified = *raw.LastModified
	} else {
		item.LastModified = info.ModTime()
	}
	if item.Date.IsZero() {
		item.Date = info.ModTime()
	}
	if item.Title == "" {
		return Item{}, fmt.Errorf("item has no title")
	}

	return item, nil
}

// LoadSite reads the site description file used for feed-level metadata.
func LoadSite(file string) (Site, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return Site{}, fmt.Errorf("failed to read site file: %w", err)
	}

	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return Site{}, fmt.Errorf("failed to parse site YAML: %w", err)
	}

	if site.URL == "" {
		return Site{}, fmt.Errorf("site file %s has no url", file)
	}

	return site, nil
}
