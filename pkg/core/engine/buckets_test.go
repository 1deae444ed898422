package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func poolWorker(id, platform, state string, skills ...string) Worker {
	return Worker{
		ID:       id,
		Platform: platform,
		RawState: state,
		Skillset: NewSkillset(skills),
	}
}

func TestBuildBucketIndex_GroupsWorkers(t *testing.T) {
	workers := []Worker{
		poolWorker("w1", "Amisys", "TX", "claims"),
		poolWorker("w2", "Amisys", "TX", "claims"),
		poolWorker("w3", "Amisys", "CA", "claims"),
	}

	ix := BuildBucketIndex(workers, []string{"Apr"})

	txBucket := ix.Get(BucketKey{Platform: "Amisys", State: "TX", Period: "Apr", Skills: "claims"})
	require.NotNil(t, txBucket)
	assert.Equal(t, 2, txBucket.Count)

	caBucket := ix.Get(BucketKey{Platform: "Amisys", State: "CA", Period: "Apr", Skills: "claims"})
	require.NotNil(t, caBucket)
	assert.Equal(t, 1, caBucket.Count)
}

func TestBuildBucketIndex_NormalizesWorkerState(t *testing.T) {
	workers := []Worker{
		poolWorker("w1", "Amisys", "tx", "claims"),
		poolWorker("w2", "Amisys", " TX ", "claims"),
	}

	ix := BuildBucketIndex(workers, []string{"Apr"})

	b := ix.Get(BucketKey{Platform: "Amisys", State: "TX", Period: "Apr", Skills: "claims"})
	require.NotNil(t, b)
	assert.Equal(t, 2, b.Count)

	// An upper-cased demand state must find the lower-cased roster entries
	alloc := NewAllocator(ix, &Ledger{})
	allocated, shortage, err := alloc.Allocate("d1", "Amisys", "TX", "Apr", "claims", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, allocated)
	assert.Equal(t, 0, shortage)
}

func TestBuildBucketIndex_ReplicatesCountsAcrossPeriods(t *testing.T) {
	workers := []Worker{
		poolWorker("w1", "Amisys", "TX", "claims"),
		poolWorker("w2", "Amisys", "TX", "claims"),
	}

	ix := BuildBucketIndex(workers, []string{"Apr", "May", "Jun"})

	for _, period := range []string{"Apr", "May", "Jun"} {
		b := ix.Get(BucketKey{Platform: "Amisys", State: "TX", Period: period, Skills: "claims"})
		require.NotNil(t, b, "period %s", period)
		assert.Equal(t, 2, b.Count, "period %s", period)
	}
}

func TestBuildBucketIndex_DiscardsEmptySkillsets(t *testing.T) {
	workers := []Worker{
		poolWorker("w1", "Amisys", "TX", "claims"),
		poolWorker("w2", "Amisys", "TX"), // no parsed skills
	}

	ix := BuildBucketIndex(workers, []string{"Apr"})

	b := ix.Get(BucketKey{Platform: "Amisys", State: "TX", Period: "Apr", Skills: "claims"})
	require.NotNil(t, b)
	assert.Equal(t, 1, b.Count)
	assert.Len(t, ix.Buckets(), 1)
}

func TestBuildBucketIndex_DeterministicOrder(t *testing.T) {
	workers := []Worker{
		poolWorker("w1", "Facets", "TX", "claims"),
		poolWorker("w2", "Amisys", "CA", "claims"),
		poolWorker("w3", "Amisys", "TX", "appeals"),
	}

	first := BuildBucketIndex(workers, []string{"Apr"})
	second := BuildBucketIndex(workers, []string{"Apr"})

	firstKeys := make([]BucketKey, 0)
	for _, b := range first.Buckets() {
		firstKeys = append(firstKeys, b.Key)
	}
	secondKeys := make([]BucketKey, 0)
	for _, b := range second.Buckets() {
		secondKeys = append(secondKeys, b.Key)
	}
	assert.Equal(t, firstKeys, secondKeys)
}

func TestBucket_TakeDecrements(t *testing.T) {
	b := &Bucket{Count: 5}

	require.NoError(t, b.Take(3))
	assert.Equal(t, 2, b.Count)
}

func TestBucket_TakeUnderflowFailsLoudly(t *testing.T) {
	b := &Bucket{Count: 2}

	err := b.Take(3)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBucketUnderflow)
	// Never silently clamp - the count is untouched
	assert.Equal(t, 2, b.Count)
}

func TestBucket_TakeNegativeFails(t *testing.T) {
	b := &Bucket{Count: 2}

	assert.ErrorIs(t, b.Take(-1), ErrBucketUnderflow)
}

func TestBucketIndex_SnapshotIsDeepCopy(t *testing.T) {
	workers := []Worker{poolWorker("w1", "Amisys", "TX", "claims")}
	ix := BuildBucketIndex(workers, []string{"Apr"})

	snapshot := ix.Snapshot()

	key := BucketKey{Platform: "Amisys", State: "TX", Period: "Apr", Skills: "claims"}
	require.NoError(t, ix.Get(key).Take(1))

	assert.Equal(t, 0, ix.Get(key).Count)
	assert.Equal(t, 1, snapshot.Get(key).Count, "snapshot must not see later mutation")
}

func TestBucketIndex_CumulativeDecrementsNeverExceedInitial(t *testing.T) {
	workers := []Worker{
		poolWorker("w1", "Amisys", "TX", "claims"),
		poolWorker("w2", "Amisys", "TX", "claims"),
		poolWorker("w3", "Amisys", "TX", "claims"),
	}
	ix := BuildBucketIndex(workers, []string{"Apr"})
	key := BucketKey{Platform: "Amisys", State: "TX", Period: "Apr", Skills: "claims"}
	b := ix.Get(key)

	require.NoError(t, b.Take(2))
	require.NoError(t, b.Take(1))
	assert.ErrorIs(t, b.Take(1), ErrBucketUnderflow)
	assert.Equal(t, 0, b.Count)
}
