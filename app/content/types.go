package content

import (
	"strings"
	"time"
)

// Content model types

type Site struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
	Language    string `yaml:"language"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
	ImageURL    string `yaml:"image_url"`
}

// URLFor resolves an item path to its canonical absolute URL.
func (s Site) URLFor(path string) string {
	base := strings.TrimSuffix(s.URL, "/")
	if path == "" {
		return base
	}
	return base + "/" + strings.TrimPrefix(path, "/")
}

type Audio struct {
	URL      string   `yaml:"url"`
	Duration *float64 `yaml:"duration"`  // seconds
	ByteSize *int64   `yaml:"byte_size"` // bytes
	Format   string   `yaml:"format"`    // e.g. "mp3"
}

type PodcastMetadata struct {
	Explicit bool   `yaml:"explicit"`
	Episode  *int   `yaml:"episode"`
	Season   *int   `yaml:"season"`
	ImageURL string `yaml:"image_url"`
}

type Item struct {
	Path         string
	Title        string
	Description  string
	Body         string // rendered HTML content
	Date         time.Time
	LastModified time.Time
	Audio        *Audio
	Podcast      *PodcastMetadata
}
