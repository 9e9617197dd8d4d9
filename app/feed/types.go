package feed

import (
	"time"

	"github.com/sitecast/sitecast/app/content"
)

// Feed generation types

// Author identifies the feed author and, through the email, the
// itunes:owner contact.
type Author struct {
	Name  string `yaml:"name" json:"name"`
	Email string `yaml:"email" json:"email"`
}

// Config describes one feed to generate. The zero value of every field is
// meaningful, and all fields are comparable: two configs are
// interchangeable for cache purposes exactly when they compare equal.
type Config struct {
	Name        string `yaml:"-" json:"name"` // Derived from filename (without .yml extension)
	TargetPath  string `yaml:"target_path" json:"targetPath"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Link        string `yaml:"link" json:"link"`
	Language    string `yaml:"language" json:"language"`
	TTL         int    `yaml:"ttl" json:"ttl"` // minutes
	Indented    bool   `yaml:"indented" json:"indented"`
	Copyright   string `yaml:"copyright" json:"copyright"`
	Author      Author `yaml:"author" json:"author"`
	Subtitle    string `yaml:"subtitle" json:"subtitle"`
	Summary     string `yaml:"summary" json:"summary"`
	Explicit    bool   `yaml:"explicit" json:"explicit"`
	Category    string `yaml:"category" json:"category"`
	Subcategory string `yaml:"subcategory" json:"subcategory"`
	Type        string `yaml:"type" json:"type"` // "episodic" or "serial"
	ImageURL    string `yaml:"image_url" json:"imageUrl"`
	HubURL      string `yaml:"hub_url" json:"hubUrl"` // WebSub hub
}

// Enclosure is a rendered entry's media attachment.
type Enclosure struct {
	URL    string
	Length int64
	Type   string // MIME type, "audio/" + format
	Title  string
}

// Entry is one fully rendered feed item, ready for assembly.
type Entry struct {
	GUID        string
	Title       string
	Description string
	Link        string
	PublishedAt time.Time
	Content     string
	Author      string
	Subtitle    string
	Summary     string
	Explicit    bool
	Duration    float64 // seconds
	ImageURL    string
	Episode     *int
	Season      *int
	Enclosure   Enclosure
}

// CacheRecord is the persisted snapshot of one successful generation.
// ItemCount always equals the number of items rendered into Feed.
type CacheRecord struct {
	Config    Config `json:"config"`
	Feed      string `json:"feed"`
	ItemCount int    `json:"itemCount"`
}

// Predicate selects items to exclude from a feed. Nil means nothing is
// excluded.
type Predicate func(item content.Item) bool

// Mutator adjusts an item's working copy before rendering. Nil means the
// item renders as-is.
type Mutator func(item *content.Item) error

// Request carries everything one generation run needs.
type Request struct {
	Config        Config
	Site          content.Site
	Items         []content.Item
	LastGenerated *time.Time // last successful generation, nil on first run
	Exclude       Predicate
	Mutate        Mutator
	Date          time.Time // generation timestamp; zero means now
	FormattedDate string    // optional pre-formatted build date, overrides Date formatting
}

// Result reports what a generation run produced.
type Result struct {
	Feed      string
	ItemCount int
	Reused    bool
}
