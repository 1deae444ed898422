package postgres

import (
	"context"
	"fmt"

	"github.com/benwarner/staffplan/pkg/db"
)

// GetWorkers retrieves all roster records
func (d *DB) GetWorkers(ctx context.Context) ([]db.Worker, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, platform, state, skills, status, periods
		FROM worker
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query workers: %w", err)
	}
	defer rows.Close()

	var workers []db.Worker
	for rows.Next() {
		var w db.Worker
		var state, skills *string
		if err := rows.Scan(&w.ID, &w.Name, &w.Platform, &state, &skills, &w.Status, &w.Periods); err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		if state != nil {
			w.State = *state
		}
		if skills != nil {
			w.Skills = *skills
		}
		workers = append(workers, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workers: %w", err)
	}

	return workers, nil
}

// InsertWorkers inserts roster records in one transaction, replacing any
// existing record with the same ID
func (d *DB) InsertWorkers(ctx context.Context, workers []db.Worker) error {
	if len(workers) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, w := range workers {
		var state, skills *string
		if w.State != "" {
			state = &w.State
		}
		if w.Skills != "" {
			skills = &w.Skills
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO worker (id, name, platform, state, skills, status, periods)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE
			SET name = $2, platform = $3, state = $4, skills = $5, status = $6, periods = $7
		`, w.ID, w.Name, w.Platform, state, skills, w.Status, w.Periods)
		if err != nil {
			return fmt.Errorf("failed to insert worker: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
