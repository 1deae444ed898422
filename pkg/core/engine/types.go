package engine

import (
	"sort"
	"strings"
)

// WildcardState is the state code that matches any state. Every worker's
// StateList contains it, and a demand row may use it to accept workers from
// any state.
const WildcardState = "N/A"

// Skillset is a set of canonical skill terms matched from a worker's
// free-text skill description. Construct it with NewSkillset or through
// Vocabulary.ParseSkills; the zero value is the empty set.
type Skillset struct {
	// terms is sorted lexicographically and contains no duplicates
	terms []string
}

// NewSkillset builds a Skillset from the given terms, deduplicating and
// sorting them
func NewSkillset(terms []string) Skillset {
	seen := make(map[string]bool, len(terms))
	unique := make([]string, 0, len(terms))
	for _, term := range terms {
		if term == "" || seen[term] {
			continue
		}
		seen[term] = true
		unique = append(unique, term)
	}
	sort.Strings(unique)
	return Skillset{terms: unique}
}

// Empty returns true if the skillset contains no terms
func (s Skillset) Empty() bool {
	return len(s.terms) == 0
}

// Size returns the number of terms in the skillset
func (s Skillset) Size() int {
	return len(s.terms)
}

// Contains returns true if the skillset contains the given canonical term
func (s Skillset) Contains(term string) bool {
	for _, t := range s.terms {
		if t == term {
			return true
		}
	}
	return false
}

// Terms returns a copy of the skillset's terms in sorted order
func (s Skillset) Terms() []string {
	out := make([]string, len(s.terms))
	copy(out, s.terms)
	return out
}

// Single returns the skillset's only term if it has exactly one
func (s Skillset) Single() (string, bool) {
	if len(s.terms) == 1 {
		return s.terms[0], true
	}
	return "", false
}

// Key returns a stable string form of the skillset, usable as a map key
func (s Skillset) Key() string {
	return strings.Join(s.terms, "|")
}

// Intersects returns true if any of the skillset's terms appears in the
// vocabulary
func (s Skillset) Intersects(vocab Vocabulary) bool {
	for _, term := range s.terms {
		for _, v := range vocab {
			if term == v {
				return true
			}
		}
	}
	return false
}

// Worker is a pool member available for allocation. Skillset and StateList
// are derived fields: Skillset via Vocabulary.ParseSkills over RawSkills, and
// StateList via DeriveStateList over RawState.
type Worker struct {
	ID       string
	Name     string
	Platform string

	// RawState is the worker's state field as imported (free text)
	RawState string

	// RawSkills is the worker's skill description as imported (free text)
	RawSkills string

	// Skillset is the set of canonical terms parsed from RawSkills. Workers
	// with an empty Skillset are excluded from the bucket index.
	Skillset Skillset

	// StateList is the worker's eligibility codes. It always contains
	// WildcardState, whatever RawState held.
	StateList []string

	// Period the worker is available for. A worker available across several
	// periods appears once per period.
	Period string
}

// EligibleFor returns true if the worker's StateList contains the given
// state, compared case-insensitively
func (w Worker) EligibleFor(state string) bool {
	for _, s := range w.StateList {
		if strings.EqualFold(s, state) {
			return true
		}
	}
	return false
}

// WildcardOnly returns true if the worker has no concrete state eligibility
func (w Worker) WildcardOnly() bool {
	for _, s := range w.StateList {
		if s != WildcardState {
			return false
		}
	}
	return true
}

// DemandRow is a single demand line from the forecast: a required quantity of
// one canonical skill on one platform, state and period.
type DemandRow struct {
	// ID links back to the forecast line this demand came from
	ID string

	Platform string

	// State is a concrete two-letter code, or WildcardState to accept
	// workers from any state
	State string

	// Skill is a single canonical vocabulary term
	Skill string

	Period string

	// Required is the demanded quantity
	Required int

	// Allocated is the quantity satisfied so far across all passes
	Allocated int

	// Weight is the row's original forecast volume, used by the proportional
	// distribution pass
	Weight float64
}

// Shortfall returns the row's remaining unmet quantity
func (r DemandRow) Shortfall() int {
	if r.Required > r.Allocated {
		return r.Required - r.Allocated
	}
	return 0
}

// Phase identifies which allocation pass produced a record
type Phase string

const (
	// PhasePrimaryExact is consumption from exact single-skill buckets
	PhasePrimaryExact Phase = "primary-exact"

	// PhasePrimaryMulti is consumption from multi-skill buckets
	PhasePrimaryMulti Phase = "primary-multi"

	// PhaseGapFill is bench consumption against unmet demand
	PhaseGapFill Phase = "gap-fill"

	// PhaseProportional is bench surplus apportioned by forecast weight
	PhaseProportional Phase = "proportional"
)

// AllocationRecord is one audit entry produced by an allocation pass. For any
// record, Allocated + Shortage == Requested.
type AllocationRecord struct {
	// DemandID references the demand row the allocation was for
	DemandID string

	Phase Phase

	// WorkerIDs lists the bench workers consumed, for bench-phase records.
	// Primary-phase records leave it nil (primary consumes bucket counts,
	// not identified workers).
	WorkerIDs []string

	Requested int
	Allocated int
	Shortage  int
}

// Ledger accumulates allocation records for the duration of one run
type Ledger struct {
	Records []AllocationRecord
}

func (l *Ledger) add(rec AllocationRecord) {
	l.Records = append(l.Records, rec)
}
