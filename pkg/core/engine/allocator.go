package engine

// Allocator runs the primary allocation pass against a bucket index. One
// allocator owns its index for the duration of a run; there is no rollback -
// a decremented unit cannot be returned within the run.
type Allocator struct {
	index  *BucketIndex
	ledger *Ledger
}

// NewAllocator creates an allocator over the given index, appending audit
// records to the given ledger
func NewAllocator(index *BucketIndex, ledger *Ledger) *Allocator {
	return &Allocator{index: index, ledger: ledger}
}

// Allocate satisfies a single demand line from the bucket index and returns
// (allocated, shortage), which always sum to requested.
//
// Matching priority:
//  1. Exact single-skill buckets (Skillset == {skill}) are consumed first,
//     up to the requested quantity.
//  2. Multi-skill buckets whose Skillset contains the skill cover any
//     remainder, iterated in the index's discovery order.
//
// A WildcardState demand state searches every bucket for the platform and
// period regardless of state. At least one record is always appended to the
// ledger, even when nothing could be allocated.
func (a *Allocator) Allocate(demandID, platform, state, period, skill string, requested int) (allocated, shortage int, err error) {
	remaining := requested
	candidates := a.index.match(platform, state, period)

	// Step 1: exact single-skill buckets
	exactTaken := 0
	for _, bucket := range candidates {
		if remaining == 0 {
			break
		}
		single, ok := bucket.Skillset.Single()
		if !ok || single != skill {
			continue
		}
		take := min(remaining, bucket.Count)
		if take == 0 {
			continue
		}
		if err := bucket.Take(take); err != nil {
			return requested - remaining, remaining, err
		}
		exactTaken += take
		remaining -= take
	}

	// Step 2: multi-skill buckets containing the skill, discovery order
	multiTaken := 0
	for _, bucket := range candidates {
		if remaining == 0 {
			break
		}
		if bucket.Skillset.Size() < 2 || !bucket.Skillset.Contains(skill) {
			continue
		}
		take := min(remaining, bucket.Count)
		if take == 0 {
			continue
		}
		if err := bucket.Take(take); err != nil {
			return requested - remaining, remaining, err
		}
		multiTaken += take
		remaining -= take
	}

	// The phase records partition the requested quantity: each record's
	// Requested covers only what its phase delivered, with any residual
	// shortage attributed to the exact record - the demand names a single
	// skill, so exact buckets are its primary source. A demand that found
	// nothing still leaves an audit trail.
	if exactTaken > 0 || remaining > 0 || multiTaken == 0 {
		a.ledger.add(AllocationRecord{
			DemandID:  demandID,
			Phase:     PhasePrimaryExact,
			Requested: exactTaken + remaining,
			Allocated: exactTaken,
			Shortage:  remaining,
		})
	}
	if multiTaken > 0 {
		a.ledger.add(AllocationRecord{
			DemandID:  demandID,
			Phase:     PhasePrimaryMulti,
			Requested: multiTaken,
			Allocated: multiTaken,
			Shortage:  0,
		})
	}

	return requested - remaining, remaining, nil
}

// AllocateRow runs Allocate for a demand row's remaining shortfall and folds
// the result back into the row's allocated count. Rows that arrive already
// satisfied are left untouched, so re-running a persisted run does not
// allocate them again.
func (a *Allocator) AllocateRow(row *DemandRow) error {
	shortfall := row.Shortfall()
	if shortfall == 0 {
		return nil
	}
	allocated, _, err := a.Allocate(row.ID, row.Platform, row.State, row.Period, row.Skill, shortfall)
	if err != nil {
		return err
	}
	row.Allocated += allocated
	return nil
}
