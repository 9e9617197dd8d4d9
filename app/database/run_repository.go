package database

import (
	"database/sql"
	"fmt"
	"time"
)

// SQLiteRunRepository stores generation run history.
type SQLiteRunRepository struct {
	db *DB
}

var _ RunRepository = (*SQLiteRunRepository)(nil)

func NewRunRepository(db *DB) *SQLiteRunRepository {
	return &SQLiteRunRepository{db: db}
}

func (r *SQLiteRunRepository) RecordRun(run Run) error {
	_, err := r.db.Exec(`
		INSERT INTO runs (feed_name, target_path, item_count, reused, duration_ms, generated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.FeedName, run.TargetPath, run.ItemCount, run.Reused,
		run.Duration.Milliseconds(), run.GeneratedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

func (r *SQLiteRunRepository) GetLastGeneratedAt(feedName string) (*time.Time, error) {
	var generatedAt string
	err := r.db.QueryRow(`
		SELECT generated_at FROM runs
		WHERE feed_name = ?
		ORDER BY generated_at DESC
		LIMIT 1
	`, feedName).Scan(&generatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query last run: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, generatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse run timestamp: %w", err)
	}
	return &ts, nil
}

func (r *SQLiteRunRepository) GetRecentRuns(feedName string, limit int) ([]Run, error) {
	rows, err := r.db.Query(`
		SELECT id, feed_name, target_path, item_count, reused, duration_ms, generated_at
		FROM runs
		WHERE feed_name = ?
		ORDER BY generated_at DESC
		LIMIT ?
	`, feedName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var durationMs int64
		var generatedAt string

		if err := rows.Scan(&run.ID, &run.FeedName, &run.TargetPath, &run.ItemCount,
			&run.Reused, &durationMs, &generatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		run.Duration = time.Duration(durationMs) * time.Millisecond
		run.GeneratedAt, err = time.Parse(time.RFC3339Nano, generatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse run timestamp: %w", err)
		}

		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (r *SQLiteRunRepository) GetRunCount() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return count, nil
}
