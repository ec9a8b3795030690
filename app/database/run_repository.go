package database

import (
	"fmt"
)

var _ RunRepository = (*SQLRunRepository)(nil)

// SQLRunRepository persists run summaries
type SQLRunRepository struct {
	db *DB
}

func NewRunRepository(db *DB) *SQLRunRepository {
	return &SQLRunRepository{db: db}
}

func (r *SQLRunRepository) InsertRun(run Run) error {
	_, err := r.db.Exec(`
		INSERT INTO runs (id, pipeline, status, message, matched, updated_pages,
			created_pages, skipped, created_today, updated_today, notified,
			started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Pipeline, run.Status, run.Message, run.Matched, run.UpdatedPages,
		run.CreatedPages, run.Skipped, run.CreatedToday, run.UpdatedToday, run.Notified,
		run.StartedAt, run.DurationMs)

	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	return nil
}

func (r *SQLRunRepository) ListRecent(limit int) ([]Run, error) {
	rows, err := r.db.Query(`
		SELECT id, pipeline, status, message, matched, updated_pages,
			created_pages, skipped, created_today, updated_today, notified,
			started_at, duration_ms
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		err := rows.Scan(&run.ID, &run.Pipeline, &run.Status, &run.Message,
			&run.Matched, &run.UpdatedPages, &run.CreatedPages, &run.Skipped,
			&run.CreatedToday, &run.UpdatedToday, &run.Notified,
			&run.StartedAt, &run.DurationMs)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (r *SQLRunRepository) GetRunCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return count, nil
}
