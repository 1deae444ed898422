package postgres

import (
	"context"
	"fmt"

	"github.com/benwarner/staffplan/pkg/db"
)

// GetForecastLines retrieves the forecast demand lines for a run
func (d *DB) GetForecastLines(ctx context.Context, runID string) ([]db.ForecastLine, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, run_id, platform, state, skill, period, volume, required, allocated
		FROM forecast_line
		WHERE run_id = $1
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query forecast lines: %w", err)
	}
	defer rows.Close()

	var lines []db.ForecastLine
	for rows.Next() {
		var l db.ForecastLine
		if err := rows.Scan(&l.ID, &l.RunID, &l.Platform, &l.State, &l.Skill, &l.Period, &l.Volume, &l.Required, &l.Allocated); err != nil {
			return nil, fmt.Errorf("failed to scan forecast line: %w", err)
		}
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating forecast lines: %w", err)
	}

	return lines, nil
}

// InsertForecastLines inserts forecast demand lines in one transaction,
// replacing any existing line with the same ID so an import can be re-run
func (d *DB) InsertForecastLines(ctx context.Context, lines []db.ForecastLine) error {
	if len(lines) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, l := range lines {
		_, err := tx.Exec(ctx, `
			INSERT INTO forecast_line (id, run_id, platform, state, skill, period, volume, required, allocated)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO UPDATE
			SET run_id = $2, platform = $3, state = $4, skill = $5, period = $6, volume = $7, required = $8, allocated = $9
		`, l.ID, l.RunID, l.Platform, l.State, l.Skill, l.Period, l.Volume, l.Required, l.Allocated)
		if err != nil {
			return fmt.Errorf("failed to insert forecast line: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// SetLineAllocated writes a forecast line's allocated quantity back after a
// run
func (d *DB) SetLineAllocated(ctx context.Context, lineID string, allocated int) error {
	_, err := d.pool.Exec(ctx, `
		UPDATE forecast_line SET allocated = $2 WHERE id = $1
	`, lineID, allocated)
	if err != nil {
		return fmt.Errorf("failed to set forecast line allocated: %w", err)
	}
	return nil
}
