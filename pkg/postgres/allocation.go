package postgres

import (
	"context"
	"fmt"

	"github.com/benwarner/staffplan/pkg/db"
)

// GetAllocationRecords retrieves the audit records for a run
func (d *DB) GetAllocationRecords(ctx context.Context, runID string) ([]db.AllocationRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, run_id, demand_id, phase, worker_ids, requested, allocated, shortage
		FROM allocation_record
		WHERE run_id = $1
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocation records: %w", err)
	}
	defer rows.Close()

	var records []db.AllocationRecord
	for rows.Next() {
		var r db.AllocationRecord
		if err := rows.Scan(&r.ID, &r.RunID, &r.DemandID, &r.Phase, &r.WorkerIDs, &r.Requested, &r.Allocated, &r.Shortage); err != nil {
			return nil, fmt.Errorf("failed to scan allocation record: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocation records: %w", err)
	}

	return records, nil
}

// InsertAllocationRecords inserts audit records in one transaction
func (d *DB) InsertAllocationRecords(ctx context.Context, records []db.AllocationRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, r := range records {
		_, err := tx.Exec(ctx, `
			INSERT INTO allocation_record (id, run_id, demand_id, phase, worker_ids, requested, allocated, shortage)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, r.ID, r.RunID, r.DemandID, r.Phase, r.WorkerIDs, r.Requested, r.Allocated, r.Shortage)
		if err != nil {
			return fmt.Errorf("failed to insert allocation record: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
