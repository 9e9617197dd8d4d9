package feed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/sitecast/sitecast/app/content"
)

func testSite() content.Site {
	return content.Site{
		Name:        "Test Site",
		Description: "A test site",
		URL:         "https://example.com",
		Language:    "en",
		AuthorName:  "Site Author",
		AuthorEmail: "author@example.com",
	}
}

func testAudio() *content.Audio {
	duration := 1800.0
	size := int64(28800000)
	return &content.Audio{
		URL:      "https://example.com/audio/ep1.mp3",
		Duration: &duration,
		ByteSize: &size,
		Format:   "mp3",
	}
}

func testItem(path string) content.Item {
	return content.Item{
		Path:        path,
		Title:       "Episode " + path,
		Description: "Description for " + path,
		Body:        "<p>Body for " + path + "</p>",
		Date:        time.Date(2023, 7, 1, 12, 0, 0, 0, time.UTC),
		Audio:       testAudio(),
	}
}

func TestRendererBuildsEntry(t *testing.T) {
	renderer := NewRenderer()

	item := testItem("episodes/ep1")
	entries, err := renderer.Run(context.Background(), []content.Item{item}, nil, Config{}, testSite())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	entry := entries[0]
	if entry.GUID != "https://example.com/episodes/ep1" {
		t.Errorf("Expected GUID 'https://example.com/episodes/ep1', got '%s'", entry.GUID)
	}
	if entry.Link != entry.GUID {
		t.Errorf("Expected link to equal GUID, got '%s'", entry.Link)
	}
	if entry.Enclosure.Type != "audio/mp3" {
		t.Errorf("Expected enclosure type 'audio/mp3', got '%s'", entry.Enclosure.Type)
	}
	if entry.Enclosure.Length != 28800000 {
		t.Errorf("Expected enclosure length 28800000, got %d", entry.Enclosure.Length)
	}
	if entry.Enclosure.Title != item.Title {
		t.Errorf("Expected enclosure title '%s', got '%s'", item.Title, entry.Enclosure.Title)
	}
	if entry.Author != "Site Author" {
		t.Errorf("Expected author fallback to site author, got '%s'", entry.Author)
	}
	if entry.Explicit {
		t.Error("Expected explicit to default to false without podcast metadata")
	}
	if entry.Duration != 1800.0 {
		t.Errorf("Expected duration 1800, got %f", entry.Duration)
	}
}

func TestRendererUsesPodcastMetadata(t *testing.T) {
	renderer := NewRenderer()

	episode := 4
	season := 2
	item := testItem("episodes/ep4")
	item.Podcast = &content.PodcastMetadata{
		Explicit: true,
		Episode:  &episode,
		Season:   &season,
		ImageURL: "https://example.com/images/ep4.jpg",
	}

	entries, err := renderer.Run(context.Background(), []content.Item{item}, nil, Config{}, testSite())
	if err != nil {
		t.Fatal(err)
	}

	entry := entries[0]
	if !entry.Explicit {
		t.Error("Expected item-level explicit flag to be honored")
	}
	if entry.Episode == nil || *entry.Episode != 4 {
		t.Errorf("Expected episode 4, got %v", entry.Episode)
	}
	if entry.Season == nil || *entry.Season != 2 {
		t.Errorf("Expected season 2, got %v", entry.Season)
	}
	if entry.ImageURL != "https://example.com/images/ep4.jpg" {
		t.Errorf("Expected item image URL, got '%s'", entry.ImageURL)
	}
}

func TestRendererExplicitNotInheritedFromConfig(t *testing.T) {
	renderer := NewRenderer()

	item := testItem("episodes/ep1")
	item.Podcast = nil

	entries, err := renderer.Run(context.Background(), []content.Item{item}, nil, Config{Explicit: true}, testSite())
	if err != nil {
		t.Fatal(err)
	}

	if entries[0].Explicit {
		t.Error("Expected entry explicit flag to default to false without podcast metadata, even when the channel is explicit")
	}
}

func TestTruncateDescription(t *testing.T) {
	short := "a short description"
	if got := truncateDescription(short); got != short {
		t.Errorf("Expected short description unchanged, got '%s'", got)
	}

	long := "a" + strings.Repeat("é", 300)
	got := truncateDescription(long)
	if len(got) > maxExtractedDescription {
		t.Errorf("Expected at most %d bytes, got %d", maxExtractedDescription, len(got))
	}
	if !utf8.ValidString(got) {
		t.Error("Expected truncation to stay on a rune boundary")
	}
}

func TestRendererMissingAudio(t *testing.T) {
	renderer := NewRenderer()

	item := testItem("episodes/no-audio")
	item.Audio = nil

	_, err := renderer.Run(context.Background(), []content.Item{item}, nil, Config{}, testSite())

	var missing *MissingAudioError
	if !errors.As(err, &missing) {
		t.Fatalf("Expected MissingAudioError, got %v", err)
	}
	if missing.Path != "episodes/no-audio" {
		t.Errorf("Expected error to carry item path, got '%s'", missing.Path)
	}
}

func TestRendererMissingAudioDuration(t *testing.T) {
	renderer := NewRenderer()

	item := testItem("episodes/no-duration")
	item.Audio.Duration = nil

	_, err := renderer.Run(context.Background(), []content.Item{item}, nil, Config{}, testSite())

	var missing *MissingAudioDurationError
	if !errors.As(err, &missing) {
		t.Fatalf("Expected MissingAudioDurationError, got %v", err)
	}
	if missing.Path != "episodes/no-duration" {
		t.Errorf("Expected error to carry item path, got '%s'", missing.Path)
	}
}

func TestRendererMissingAudioSize(t *testing.T) {
	renderer := NewRenderer()

	item := testItem("episodes/no-size")
	item.Audio.ByteSize = nil

	_, err := renderer.Run(context.Background(), []content.Item{item}, nil, Config{}, testSite())

	var missing *MissingAudioSizeError
	if !errors.As(err, &missing) {
		t.Fatalf("Expected MissingAudioSizeError, got %v", err)
	}
}

func TestRendererSingleFailureAbortsBatch(t *testing.T) {
	renderer := NewRenderer()

	items := make([]content.Item, 10)
	for i := range items {
		items[i] = testItem(fmt.Sprintf("episodes/ep%d", i))
	}
	items[7].Audio = nil

	entries, err := renderer.Run(context.Background(), items, nil, Config{}, testSite())
	if err == nil {
		t.Fatal("Expected batch to fail when one item is invalid")
	}
	if entries != nil {
		t.Error("Expected no partial entry list on failure")
	}
}

func TestRendererMutationHook(t *testing.T) {
	renderer := NewRenderer()

	item := testItem("episodes/ep1")
	original := item.Title

	entries, err := renderer.Run(context.Background(), []content.Item{item}, func(item *content.Item) error {
		item.Title = "Mutated " + item.Title
		return nil
	}, Config{}, testSite())
	if err != nil {
		t.Fatal(err)
	}

	if entries[0].Title != "Mutated Episode episodes/ep1" {
		t.Errorf("Expected mutation hook to apply, got '%s'", entries[0].Title)
	}
	if item.Title != original {
		t.Error("Mutation hook must operate on a copy, not the caller's item")
	}
}

func TestRendererMutationHookFailure(t *testing.T) {
	renderer := NewRenderer()

	hookErr := errors.New("hook rejected item")
	_, err := renderer.Run(context.Background(), []content.Item{testItem("ep1")}, func(item *content.Item) error {
		return hookErr
	}, Config{}, testSite())

	if !errors.Is(err, hookErr) {
		t.Errorf("Expected hook error to propagate, got %v", err)
	}
}

func TestRendererPreservesInputOrder(t *testing.T) {
	renderer := NewRenderer()

	items := make([]content.Item, 50)
	for i := range items {
		items[i] = testItem(fmt.Sprintf("episodes/ep%03d", i))
	}

	entries, err := renderer.Run(context.Background(), items, nil, Config{}, testSite())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(items) {
		t.Fatalf("Expected %d entries, got %d", len(items), len(entries))
	}

	for i, entry := range entries {
		expected := fmt.Sprintf("https://example.com/episodes/ep%03d", i)
		if entry.GUID != expected {
			t.Errorf("Position %d: expected GUID '%s', got '%s'", i, expected, entry.GUID)
		}
	}
}
