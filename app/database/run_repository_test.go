package database

import (
	"path/filepath"
	"testing"
	"time"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnection(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := RunMigrations(db); err != nil {
		t.Fatal(err)
	}

	return db
}

func TestRunRepositoryRecordAndLastGenerated(t *testing.T) {
	repo := NewRunRepository(setupTestDB(t))

	if last, err := repo.GetLastGeneratedAt("show"); err != nil || last != nil {
		t.Fatalf("Expected no last run for fresh feed, got %v, %v", last, err)
	}

	first := time.Date(2023, 7, 1, 12, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	for _, ts := range []time.Time{first, second} {
		err := repo.RecordRun(Run{
			FeedName:    "show",
			TargetPath:  "podcast/feed.rss",
			ItemCount:   3,
			Reused:      false,
			Duration:    120 * time.Millisecond,
			GeneratedAt: ts,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	last, err := repo.GetLastGeneratedAt("show")
	if err != nil {
		t.Fatal(err)
	}
	if last == nil || !last.Equal(second) {
		t.Errorf("Expected last generation %v, got %v", second, last)
	}
}

func TestRunRepositoryRecentRuns(t *testing.T) {
	repo := NewRunRepository(setupTestDB(t))

	base := time.Date(2023, 7, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		err := repo.RecordRun(Run{
			FeedName:    "show",
			TargetPath:  "podcast/feed.rss",
			ItemCount:   i,
			Reused:      i%2 == 0,
			GeneratedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	runs, err := repo.GetRecentRuns("show", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	if runs[0].ItemCount != 4 {
		t.Errorf("Expected most recent run first, got item count %d", runs[0].ItemCount)
	}

	count, err := repo.GetRunCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 5 {
		t.Errorf("Expected 5 runs total, got %d", count)
	}
}

func TestRunRepositoryIsolatesFeeds(t *testing.T) {
	repo := NewRunRepository(setupTestDB(t))

	err := repo.RecordRun(Run{
		FeedName:    "other",
		TargetPath:  "other/feed.rss",
		ItemCount:   1,
		GeneratedAt: time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}

	last, err := repo.GetLastGeneratedAt("show")
	if err != nil {
		t.Fatal(err)
	}
	if last != nil {
		t.Errorf("Expected no runs for 'show', got %v", last)
	}
}
