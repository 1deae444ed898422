package engine

import (
	"strings"
	"unicode"
)

// DeriveStateList resolves a worker's raw state field into eligibility codes.
// The raw text is tokenized into candidate codes; only two-letter tokens that
// appear in the set of states referenced anywhere in the demand dataset are
// kept (case-insensitive, normalized to upper case). WildcardState is always
// appended, so a worker whose state resolves to nothing recognizable falls
// back to wildcard-only eligibility.
func DeriveStateList(rawState string, demandStates map[string]bool) []string {
	tokens := strings.FieldsFunc(rawState, func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	states := make([]string, 0, len(tokens)+1)
	seen := make(map[string]bool)
	for _, token := range tokens {
		code := strings.ToUpper(token)
		if len(code) != 2 || !demandStates[code] || seen[code] {
			continue
		}
		seen[code] = true
		states = append(states, code)
	}

	return append(states, WildcardState)
}

// DemandStates collects the set of concrete state codes referenced by the
// demand rows, upper-cased. WildcardState is not included.
func DemandStates(rows []*DemandRow) map[string]bool {
	states := make(map[string]bool)
	for _, row := range rows {
		if row.State == WildcardState {
			continue
		}
		states[strings.ToUpper(row.State)] = true
	}
	return states
}

// Bench is the ordered list of leftover workers available to the bench
// passes. Workers are consumed at most once: taking a worker removes it from
// the list.
type Bench struct {
	workers []Worker
}

// NewBench builds a bench over the given workers, preserving list order
func NewBench(workers []Worker) *Bench {
	b := &Bench{workers: make([]Worker, len(workers))}
	copy(b.workers, workers)
	return b
}

// Len returns the number of workers still on the bench
func (b *Bench) Len() int {
	return len(b.workers)
}

// Remaining returns the workers still on the bench, in order
func (b *Bench) Remaining() []Worker {
	out := make([]Worker, len(b.workers))
	copy(out, b.workers)
	return out
}

// takeFirst removes and returns the first worker satisfying the predicate
func (b *Bench) takeFirst(match func(Worker) bool) (Worker, bool) {
	for i, w := range b.workers {
		if match(w) {
			b.workers = append(b.workers[:i:i], b.workers[i+1:]...)
			return w, true
		}
	}
	return Worker{}, false
}

// TakeEligibleIn removes and returns the first worker for the given platform
// and period whose StateList contains the given state
func (b *Bench) TakeEligibleIn(platform, period, state string) (Worker, bool) {
	return b.takeFirst(func(w Worker) bool {
		return w.Platform == platform && w.Period == period && w.EligibleFor(state)
	})
}

// TakeWildcardOnlyIn removes and returns the first worker for the given
// platform and period with no concrete state eligibility
func (b *Bench) TakeWildcardOnlyIn(platform, period string) (Worker, bool) {
	return b.takeFirst(func(w Worker) bool {
		return w.Platform == platform && w.Period == period && w.WildcardOnly()
	})
}

// FillGaps runs the first bench pass: for every demand row still short after
// primary allocation, shortfall units are filled one at a time by the first
// state-eligible worker remaining on the bench for the row's platform and
// period. Rows are visited in order. A row whose shortfall cannot be fully
// covered keeps its partial fill; running out of compatible workers is not an
// error.
func FillGaps(rows []*DemandRow, bench *Bench, ledger *Ledger) {
	for _, row := range rows {
		shortfall := row.Shortfall()
		if shortfall == 0 {
			continue
		}

		var workerIDs []string
		filled := 0
		for unit := 0; unit < shortfall; unit++ {
			worker, ok := bench.TakeEligibleIn(row.Platform, row.Period, row.State)
			if !ok {
				break
			}
			workerIDs = append(workerIDs, worker.ID)
			row.Allocated++
			filled++
		}

		ledger.add(AllocationRecord{
			DemandID:  row.ID,
			Phase:     PhaseGapFill,
			WorkerIDs: workerIDs,
			Requested: shortfall,
			Allocated: filled,
			Shortage:  shortfall - filled,
		})
	}
}
