package engine

import (
	"math"
	"sort"
)

// Apportion splits an integer surplus across rows proportionally to their
// weights using the Largest Remainder Method. Each row receives the floor of
// its ideal share; leftover units go one each to the rows with the largest
// fractional remainders, ties broken by original row order. The returned
// shares always sum to surplus.
//
// A zero weight sum returns nil: there is nothing to apportion against, and
// the caller skips distribution for that group.
func Apportion(surplus int, weights []float64) []int {
	if surplus <= 0 || len(weights) == 0 {
		return nil
	}

	var sum float64
	for _, w := range weights {
		sum += w
	}
	if sum == 0 {
		return nil
	}

	shares := make([]int, len(weights))
	remainders := make([]float64, len(weights))
	assigned := 0
	for i, w := range weights {
		ideal := float64(surplus) * w / sum
		floor := math.Floor(ideal)
		shares[i] = int(floor)
		remainders[i] = ideal - floor
		assigned += shares[i]
	}

	// Hand the leftover units to the largest remainders; sort is stable so
	// equal remainders keep row order
	extra := surplus - assigned
	order := make([]int, len(weights))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})
	for i := 0; i < extra; i++ {
		shares[order[i]]++
	}

	return shares
}

// UnmetAllotment reports proportional-distribution units that found no
// eligible worker. The units are returned to the bench (the workers remain
// unconsumed and show up as unutilized) rather than silently dropped.
type UnmetAllotment struct {
	DemandID string
	Units    int
}

// DistributeSurplus runs the second bench pass: leftover bench workers are
// apportioned across demand rows in proportion to each row's original
// forecast weight, grouped by (platform, period).
//
// Within a row's allotted units, state-compatible workers are preferred;
// wildcard-only workers cover the rest. An allotted unit with no worker left
// is skipped and reported as an unmet allotment, not an error.
func DistributeSurplus(rows []*DemandRow, bench *Bench, ledger *Ledger) []UnmetAllotment {
	type group struct {
		platform string
		period   string
	}

	// Group demand rows by platform and period, preserving row order
	groupRows := make(map[group][]*DemandRow)
	var groupOrder []group
	for _, row := range rows {
		g := group{platform: row.Platform, period: row.Period}
		if _, ok := groupRows[g]; !ok {
			groupOrder = append(groupOrder, g)
		}
		groupRows[g] = append(groupRows[g], row)
	}

	var unmet []UnmetAllotment
	for _, g := range groupOrder {
		members := groupRows[g]

		// Surplus for this group is the bench headcount still available to
		// its platform and period
		surplus := 0
		for _, w := range bench.Remaining() {
			if w.Platform == g.platform && w.Period == g.period {
				surplus++
			}
		}
		if surplus == 0 {
			continue
		}

		weights := make([]float64, len(members))
		for i, row := range members {
			weights[i] = row.Weight
		}

		shares := Apportion(surplus, weights)
		if shares == nil {
			continue
		}

		for i, row := range members {
			if shares[i] == 0 {
				continue
			}

			var workerIDs []string
			placed := 0
			for unit := 0; unit < shares[i]; unit++ {
				worker, ok := bench.TakeEligibleIn(g.platform, g.period, row.State)
				if !ok {
					worker, ok = bench.TakeWildcardOnlyIn(g.platform, g.period)
				}
				if !ok {
					break
				}
				workerIDs = append(workerIDs, worker.ID)
				row.Allocated++
				placed++
			}

			if placed < shares[i] {
				unmet = append(unmet, UnmetAllotment{DemandID: row.ID, Units: shares[i] - placed})
			}

			ledger.add(AllocationRecord{
				DemandID:  row.ID,
				Phase:     PhaseProportional,
				WorkerIDs: workerIDs,
				Requested: shares[i],
				Allocated: placed,
				Shortage:  shares[i] - placed,
			})
		}
	}

	return unmet
}
