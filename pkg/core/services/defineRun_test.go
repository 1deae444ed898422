package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/benwarner/staffplan/pkg/db"
)

// mockRunStore implements db.RunStore for testing
type mockRunStore struct {
	runs         []db.Run
	insertedRuns []*db.Run
	getRunsErr   error
	insertRunErr error
}

func (m *mockRunStore) GetRuns(ctx context.Context) ([]db.Run, error) {
	if m.getRunsErr != nil {
		return nil, m.getRunsErr
	}
	return m.runs, nil
}

func (m *mockRunStore) InsertRun(ctx context.Context, run *db.Run) error {
	if m.insertRunErr != nil {
		return m.insertRunErr
	}
	m.insertedRuns = append(m.insertedRuns, run)
	return nil
}

func TestDefineRun_FirstRunStartsComingMonth(t *testing.T) {
	store := &mockRunStore{}
	logger := zap.NewNop()

	result, err := DefineRun(context.Background(), store, logger, 3)

	require.NoError(t, err)
	require.Len(t, store.insertedRuns, 1)
	assert.Equal(t, result.Run, store.insertedRuns[0])
	assert.NotEmpty(t, result.Run.ID)

	expectedStart := firstOfNextMonth(time.Now())
	assert.Equal(t, expectedStart.Format("2006-01-02"), result.Run.Start)

	require.Len(t, result.Run.Periods, 3)
	assert.Equal(t, expectedStart.Format(PeriodFormat), result.Run.Periods[0])
}

func TestDefineRun_ChainsAfterLatestRun(t *testing.T) {
	store := &mockRunStore{
		runs: []db.Run{
			{ID: "old", Start: "2025-06-01", Periods: []string{"2025-06", "2025-07"}},
			{ID: "latest", Start: "2025-11-01", Periods: []string{"2025-11", "2025-12", "2026-01"}},
		},
	}
	logger := zap.NewNop()

	result, err := DefineRun(context.Background(), store, logger, 2)

	require.NoError(t, err)
	assert.Equal(t, "2026-02-01", result.Run.Start)
	assert.Equal(t, []string{"2026-02", "2026-03"}, result.Run.Periods)
}

func TestDefineRun_InvalidPeriodCount(t *testing.T) {
	store := &mockRunStore{}
	logger := zap.NewNop()

	_, err := DefineRun(context.Background(), store, logger, 0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "period count must be positive")
	assert.Empty(t, store.insertedRuns)
}

func TestDefineRun_InsertError(t *testing.T) {
	store := &mockRunStore{insertRunErr: errors.New("connection refused")}
	logger := zap.NewNop()

	_, err := DefineRun(context.Background(), store, logger, 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert run")
}

func TestExpandPeriods_CrossesYearBoundary(t *testing.T) {
	start := time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC)

	periods, err := expandPeriods(start, 4)

	require.NoError(t, err)
	assert.Equal(t, []string{"2026-11", "2026-12", "2027-01", "2027-02"}, periods)
}

func TestFindLatestRun_PicksMostRecentStart(t *testing.T) {
	runs := []db.Run{
		{ID: "a", Start: "2025-03-01"},
		{ID: "c", Start: "2026-01-01"},
		{ID: "b", Start: "2025-09-01"},
	}

	latest := findLatestRun(runs)

	require.NotNil(t, latest)
	assert.Equal(t, "c", latest.ID)
}
