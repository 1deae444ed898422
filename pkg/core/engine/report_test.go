package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSummary_Totals(t *testing.T) {
	workers := []Worker{
		poolWorker("w1", "Amisys", "TX", "claims"),
		poolWorker("w2", "Amisys", "TX", "claims"),
		poolWorker("w3", "Amisys", "TX", "claims", "appeals"),
	}
	ix := BuildBucketIndex(workers, []string{"Apr"})
	snapshot := ix.Snapshot()
	ledger := &Ledger{}
	alloc := NewAllocator(ix, ledger)

	_, _, err := alloc.Allocate("d1", "Amisys", "TX", "Apr", "claims", 3)
	require.NoError(t, err)

	summary := BuildSummary(snapshot, ix, ledger)

	assert.Equal(t, 3, summary.TotalInitial)
	assert.Equal(t, 3, summary.TotalAllocated)
	assert.Equal(t, 0, summary.TotalRemaining)
}

func TestBuildSummary_CategorySplit(t *testing.T) {
	workers := []Worker{
		poolWorker("w1", "Amisys", "TX", "claims"),
		poolWorker("w2", "Amisys", "TX", "claims", "appeals"),
	}
	ix := BuildBucketIndex(workers, []string{"Apr"})
	snapshot := ix.Snapshot()
	ledger := &Ledger{}
	alloc := NewAllocator(ix, ledger)

	_, _, err := alloc.Allocate("d1", "Amisys", "TX", "Apr", "claims", 2)
	require.NoError(t, err)

	summary := BuildSummary(snapshot, ix, ledger)

	assert.Equal(t, 1, summary.SingleSkill.Initial)
	assert.Equal(t, 1, summary.SingleSkill.Allocated)
	assert.Equal(t, 1, summary.MultiSkill.Initial)
	assert.Equal(t, 1, summary.MultiSkill.Allocated)

	// Each pass accounts only for the units it covered
	assert.Equal(t, 1, summary.SingleSkill.Requested)
	assert.Equal(t, 1, summary.MultiSkill.Requested)
	assert.InDelta(t, 1.0, summary.SingleSkill.SuccessRate, 1e-9)
	assert.InDelta(t, 1.0, summary.MultiSkill.SuccessRate, 1e-9)
}

func TestBuildSummary_NoDemandZeroRates(t *testing.T) {
	workers := []Worker{poolWorker("w1", "Amisys", "TX", "claims")}
	ix := BuildBucketIndex(workers, []string{"Apr"})
	snapshot := ix.Snapshot()

	summary := BuildSummary(snapshot, ix, &Ledger{})

	assert.Equal(t, 1, summary.TotalInitial)
	assert.Equal(t, 0, summary.TotalAllocated)
	assert.Zero(t, summary.SingleSkill.SuccessRate)
	assert.Zero(t, summary.MultiSkill.SuccessRate)
}

func TestUnmetDemandView_OnlyShortRows(t *testing.T) {
	rows := []*DemandRow{
		{ID: "d1", Platform: "Amisys", State: "TX", Skill: "claims", Period: "Apr", Required: 5, Allocated: 3},
		{ID: "d2", Platform: "Amisys", State: "TX", Skill: "appeals", Period: "Apr", Required: 2, Allocated: 2},
	}

	view := UnmetDemandView(rows)

	require.Len(t, view, 1)
	assert.Equal(t, "d1", view[0].DemandID)
	assert.Equal(t, 2, view[0].Shortage)
}

func TestUnutilizedView_FiltersByVocabularyOverlap(t *testing.T) {
	workers := []Worker{
		poolWorker("w1", "Amisys", "TX", "claims"),
		poolWorker("w2", "Amisys", "TX", "cobol"),
	}
	ix := BuildBucketIndex(workers, []string{"Apr"})
	vocab := BuildVocabulary([]string{"claims"})

	view := UnutilizedView(ix, vocab)

	require.Len(t, view, 1)
	assert.Equal(t, "claims", view[0].Skillset.Key())
	assert.Equal(t, 1, view[0].Remaining)
}

func TestUnutilizedView_OmitsDrainedBuckets(t *testing.T) {
	workers := []Worker{poolWorker("w1", "Amisys", "TX", "claims")}
	ix := BuildBucketIndex(workers, []string{"Apr"})
	vocab := BuildVocabulary([]string{"claims"})

	alloc := NewAllocator(ix, &Ledger{})
	_, _, err := alloc.Allocate("d1", "Amisys", "TX", "Apr", "claims", 1)
	require.NoError(t, err)

	assert.Empty(t, UnutilizedView(ix, vocab))
}
