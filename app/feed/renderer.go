package feed

import (
	"cmp"
	"context"
	"strings"
	"unicode/utf8"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/sync/errgroup"

	"github.com/sitecast/sitecast/app/content"
)

const (
	maxExtractedDescription = 300
	maxConcurrentRenders    = 8
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Run transforms every selected item into a feed entry. Items render
// concurrently and independently; results land in a slice addressed by
// input index, so the output order always equals the input order no
// matter which render finishes first. The first failing item aborts the
// batch and its error is the one returned.
func (r *Renderer) Run(ctx context.Context, items []content.Item, mutate Mutator, config Config, site content.Site) ([]Entry, error) {
	entries := make([]Entry, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRenders)
	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			entry, err := r.renderItem(item, mutate, config, site)
			if err != nil {
				return err
			}

			entries[i] = entry
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *Renderer) renderItem(item content.Item, mutate Mutator, config Config, site content.Site) (Entry, error) {
	// The mutation hook operates on a working copy; the caller's item is
	// never modified.
	if mutate != nil {
		if err := mutate(&item); err != nil {
			return Entry{}, err
		}
	}

	if item.Audio == nil {
		return Entry{}, &MissingAudioError{Path: item.Path}
	}
	if item.Audio.Duration == nil {
		return Entry{}, &MissingAudioDurationError{Path: item.Path}
	}
	if item.Audio.ByteSize == nil {
		return Entry{}, &MissingAudioSizeError{Path: item.Path}
	}

	description := item.Description
	if description == "" && item.Body != "" {
		description = r.extractDescription(item.Body)
	}

	// The entry-level explicit flag is per-item metadata, not a channel
	// inheritance: items without podcast metadata are marked non-explicit.
	explicit := false
	var episode, season *int
	imageURL := config.ImageURL
	if item.Podcast != nil {
		explicit = item.Podcast.Explicit
		episode = item.Podcast.Episode
		season = item.Podcast.Season
		if item.Podcast.ImageURL != "" {
			imageURL = item.Podcast.ImageURL
		}
	}

	link := site.URLFor(item.Path)

	return Entry{
		GUID:        link,
		Title:       item.Title,
		Description: description,
		Link:        link,
		PublishedAt: item.Date,
		Content:     item.Body,
		Author:      cmp.Or(config.Author.Name, site.AuthorName),
		Subtitle:    description,
		Summary:     description,
		Explicit:    explicit,
		Duration:    *item.Audio.Duration,
		ImageURL:    imageURL,
		Episode:     episode,
		Season:      season,
		Enclosure: Enclosure{
			URL:    item.Audio.URL,
			Length: *item.Audio.ByteSize,
			Type:   "audio/" + item.Audio.Format,
			Title:  item.Title,
		},
	}, nil
}

// extractDescription derives a plain-text description from an item's HTML
// body when none was authored. Extraction failures fall back to an empty
// description rather than failing the item.
func (r *Renderer) extractDescription(body string) string {
	article, err := readability.FromReader(strings.NewReader(body), nil)
	if err != nil {
		return ""
	}

	text := strings.TrimSpace(article.Excerpt)
	if text == "" {
		text = strings.Join(strings.Fields(article.TextContent), " ")
	}

	return truncateDescription(text)
}

// truncateDescription caps an extracted description, backing up to a rune
// boundary so a multi-byte character is never split.
func truncateDescription(text string) string {
	if len(text) <= maxExtractedDescription {
		return text
	}

	cut := maxExtractedDescription
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}

	return strings.TrimSpace(text[:cut])
}
