package engine

// CategoryStats aggregates allocation figures for one bucket category
// (single-skill or multi-skill)
type CategoryStats struct {
	// Initial is the category's headcount before any allocation
	Initial int

	// Allocated is the headcount consumed by the primary pass
	Allocated int

	// Remaining is the headcount left after the run
	Remaining int

	// Requested is the demand quantity the category was asked to cover,
	// summed across primary-pass records
	Requested int

	// SuccessRate is Allocated / Requested, or 0 when nothing was requested
	SuccessRate float64
}

// Summary aggregates the run's totals for operator-facing export
type Summary struct {
	TotalInitial   int
	TotalAllocated int
	TotalRemaining int

	SingleSkill CategoryStats
	MultiSkill  CategoryStats
}

// UnmetDemand is one row of the unmet-demand view
type UnmetDemand struct {
	DemandID string
	Platform string
	State    string
	Skill    string
	Period   string

	Required  int
	Allocated int
	Shortage  int
}

// UnutilizedBucket is one row of the unutilized-resources view: a bucket with
// headcount left over whose skillset overlaps the demand vocabulary
type UnutilizedBucket struct {
	Key       BucketKey
	Skillset  Skillset
	Remaining int
}

// BuildSummary computes run totals by comparing the final index against the
// pre-allocation snapshot. The single- vs multi-skill split follows each
// bucket's skillset size; requested quantities per category come from the
// primary-pass ledger records.
func BuildSummary(snapshot, final *BucketIndex, ledger *Ledger) Summary {
	var s Summary

	for _, initial := range snapshot.Buckets() {
		remaining := 0
		if b := final.Get(initial.Key); b != nil {
			remaining = b.Count
		}
		allocated := initial.Count - remaining

		s.TotalInitial += initial.Count
		s.TotalAllocated += allocated
		s.TotalRemaining += remaining

		if initial.Skillset.Size() == 1 {
			s.SingleSkill.Initial += initial.Count
			s.SingleSkill.Allocated += allocated
			s.SingleSkill.Remaining += remaining
		} else {
			s.MultiSkill.Initial += initial.Count
			s.MultiSkill.Allocated += allocated
			s.MultiSkill.Remaining += remaining
		}
	}

	for _, rec := range ledger.Records {
		switch rec.Phase {
		case PhasePrimaryExact:
			s.SingleSkill.Requested += rec.Requested
		case PhasePrimaryMulti:
			s.MultiSkill.Requested += rec.Requested
		}
	}

	if s.SingleSkill.Requested > 0 {
		s.SingleSkill.SuccessRate = float64(s.SingleSkill.Allocated) / float64(s.SingleSkill.Requested)
	}
	if s.MultiSkill.Requested > 0 {
		s.MultiSkill.SuccessRate = float64(s.MultiSkill.Allocated) / float64(s.MultiSkill.Requested)
	}

	return s
}

// UnmetDemandView lists the demand rows that ended the run with a shortage
func UnmetDemandView(rows []*DemandRow) []UnmetDemand {
	out := make([]UnmetDemand, 0)
	for _, row := range rows {
		if row.Shortfall() == 0 {
			continue
		}
		out = append(out, UnmetDemand{
			DemandID:  row.ID,
			Platform:  row.Platform,
			State:     row.State,
			Skill:     row.Skill,
			Period:    row.Period,
			Required:  row.Required,
			Allocated: row.Allocated,
			Shortage:  row.Shortfall(),
		})
	}
	return out
}

// UnutilizedView lists the buckets that still hold headcount relevant to the
// demand vocabulary. Buckets whose skillset shares no term with the
// vocabulary are noise for capacity planning and are omitted.
func UnutilizedView(final *BucketIndex, vocab Vocabulary) []UnutilizedBucket {
	out := make([]UnutilizedBucket, 0)
	for _, b := range final.Buckets() {
		if b.Count == 0 || !b.Skillset.Intersects(vocab) {
			continue
		}
		out = append(out, UnutilizedBucket{Key: b.Key, Skillset: b.Skillset, Remaining: b.Count})
	}
	return out
}
