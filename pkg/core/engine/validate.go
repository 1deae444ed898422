package engine

import "fmt"

// ValidationError describes one consistency violation found in a finished run
type ValidationError struct {
	DemandID    string
	Description string
}

func (e ValidationError) Error() string {
	if e.DemandID == "" {
		return e.Description
	}
	return fmt.Sprintf("%s: %s", e.DemandID, e.Description)
}

// ValidateRunState checks a finished run for internal consistency: every
// ledger record's quantities must reconcile, row allocations must cover what
// the ledger says was placed, and no bucket may end below zero. Rows may
// legitimately exceed their required quantity after proportional
// distribution, so only negative counts are violations there. An empty slice
// indicates a consistent run.
func ValidateRunState(rows []*DemandRow, index *BucketIndex, ledger *Ledger) []ValidationError {
	var errors []ValidationError

	for _, rec := range ledger.Records {
		if rec.Allocated+rec.Shortage != rec.Requested {
			errors = append(errors, ValidationError{
				DemandID: rec.DemandID,
				Description: fmt.Sprintf("%s record does not reconcile: allocated %d + shortage %d != requested %d",
					rec.Phase, rec.Allocated, rec.Shortage, rec.Requested),
			})
		}
		if rec.Allocated < 0 || rec.Shortage < 0 {
			errors = append(errors, ValidationError{
				DemandID:    rec.DemandID,
				Description: fmt.Sprintf("%s record has negative quantities", rec.Phase),
			})
		}
	}

	placed := make(map[string]int)
	for _, rec := range ledger.Records {
		placed[rec.DemandID] += rec.Allocated
	}
	for _, row := range rows {
		if row.Allocated < 0 {
			errors = append(errors, ValidationError{
				DemandID:    row.ID,
				Description: fmt.Sprintf("negative allocated count %d", row.Allocated),
			})
		}
		// Rows may carry allocations from before the run, so the ledger
		// total is a floor, not an exact match
		if row.Allocated < placed[row.ID] {
			errors = append(errors, ValidationError{
				DemandID:    row.ID,
				Description: fmt.Sprintf("row allocated %d is below ledger total %d", row.Allocated, placed[row.ID]),
			})
		}
	}

	for _, bucket := range index.Buckets() {
		if bucket.Count < 0 {
			errors = append(errors, ValidationError{
				Description: fmt.Sprintf("bucket %s has negative count %d", bucket.Key, bucket.Count),
			})
		}
	}

	return errors
}
