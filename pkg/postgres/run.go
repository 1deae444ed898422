package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/benwarner/staffplan/pkg/db"
)

// GetRuns retrieves all planning run records
func (d *DB) GetRuns(ctx context.Context) ([]db.Run, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, start, periods
		FROM run
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []db.Run
	for rows.Next() {
		var r db.Run
		var start time.Time
		if err := rows.Scan(&r.ID, &start, &r.Periods); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Start = start.Format("2006-01-02")
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// InsertRun inserts a new planning run record
func (d *DB) InsertRun(ctx context.Context, run *db.Run) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO run (id, start, periods)
		VALUES ($1, $2, $3)
	`, run.ID, run.Start, run.Periods)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}
