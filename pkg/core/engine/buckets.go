package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrBucketUnderflow indicates an attempted decrement larger than a bucket's
// remaining count. It is a programming-invariant violation, never a normal
// capacity shortage.
var ErrBucketUnderflow = errors.New("bucket underflow")

// BucketKey identifies one resource bucket
type BucketKey struct {
	Platform string
	State    string
	Period   string

	// Skills is the Skillset key (stable joined form)
	Skills string
}

func (k BucketKey) String() string {
	return fmt.Sprintf("%s/%s/%s/{%s}", k.Platform, k.State, k.Period, k.Skills)
}

// Bucket holds a mutable count of interchangeable workers sharing a
// (platform, state, period, skillset) grouping
type Bucket struct {
	Key      BucketKey
	Skillset Skillset

	// Count is the remaining headcount. It never goes negative; decrements
	// go through Take.
	Count int
}

// Take removes n units from the bucket. It returns ErrBucketUnderflow if n
// exceeds the remaining count - callers must size their take first.
func (b *Bucket) Take(n int) error {
	if n < 0 || n > b.Count {
		return fmt.Errorf("%w: take %d from %s with %d remaining", ErrBucketUnderflow, n, b.Key, b.Count)
	}
	b.Count -= n
	return nil
}

// BucketIndex is the full bucketed inventory for one allocation run. It is
// exclusively owned by that run: build it, snapshot it, then let a single
// allocation pass mutate it. It must never be shared across concurrent runs.
type BucketIndex struct {
	buckets map[BucketKey]*Bucket

	// order is the deterministic discovery order used when several buckets
	// match a search (sorted group keys at build time, periods within)
	order []BucketKey
}

// BuildBucketIndex groups the worker pool into buckets. Workers with an empty
// Skillset are discarded. Each (platform, state, skillset) group is
// materialized once per covered period: a worker snapshot count is replicated
// into every period, modeling capacity per-period rather than amortized
// across the horizon.
func BuildBucketIndex(workers []Worker, periods []string) *BucketIndex {
	type groupKey struct {
		platform string
		state    string
		skills   string
	}

	counts := make(map[groupKey]int)
	skillsets := make(map[groupKey]Skillset)

	for _, w := range workers {
		if w.Skillset.Empty() {
			continue
		}
		// Roster state casing varies; demand states are upper-cased, so
		// bucket keys must be too or the two sides never meet
		gk := groupKey{
			platform: w.Platform,
			state:    strings.ToUpper(strings.TrimSpace(w.RawState)),
			skills:   w.Skillset.Key(),
		}
		counts[gk]++
		skillsets[gk] = w.Skillset
	}

	// Sort group keys for a reproducible bucket order
	groups := make([]groupKey, 0, len(counts))
	for gk := range counts {
		groups = append(groups, gk)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].platform != groups[j].platform {
			return groups[i].platform < groups[j].platform
		}
		if groups[i].state != groups[j].state {
			return groups[i].state < groups[j].state
		}
		return groups[i].skills < groups[j].skills
	})

	ix := &BucketIndex{buckets: make(map[BucketKey]*Bucket)}
	for _, gk := range groups {
		for _, period := range periods {
			key := BucketKey{Platform: gk.platform, State: gk.state, Period: period, Skills: gk.skills}
			ix.buckets[key] = &Bucket{Key: key, Skillset: skillsets[gk], Count: counts[gk]}
			ix.order = append(ix.order, key)
		}
	}

	return ix
}

// Snapshot returns a deep copy of the index. Take one before any allocation
// begins; reporting compares the final state against it.
func (ix *BucketIndex) Snapshot() *BucketIndex {
	clone := &BucketIndex{
		buckets: make(map[BucketKey]*Bucket, len(ix.buckets)),
		order:   make([]BucketKey, len(ix.order)),
	}
	copy(clone.order, ix.order)
	for key, b := range ix.buckets {
		copied := *b
		clone.buckets[key] = &copied
	}
	return clone
}

// Get returns the bucket with the exact key, or nil
func (ix *BucketIndex) Get(key BucketKey) *Bucket {
	return ix.buckets[key]
}

// Buckets returns all buckets in discovery order
func (ix *BucketIndex) Buckets() []*Bucket {
	out := make([]*Bucket, 0, len(ix.order))
	for _, key := range ix.order {
		out = append(out, ix.buckets[key])
	}
	return out
}

// match returns the buckets eligible for a demand search, in discovery order.
// A WildcardState demand state matches buckets of any state for the platform
// and period; otherwise only the demand's exact state matches.
func (ix *BucketIndex) match(platform, state, period string) []*Bucket {
	out := make([]*Bucket, 0)
	for _, key := range ix.order {
		if key.Platform != platform || key.Period != period {
			continue
		}
		if state != WildcardState && key.State != state {
			continue
		}
		out = append(out, ix.buckets[key])
	}
	return out
}

// TotalCount sums the remaining counts across all buckets
func (ix *BucketIndex) TotalCount() int {
	total := 0
	for _, b := range ix.buckets {
		total += b.Count
	}
	return total
}
