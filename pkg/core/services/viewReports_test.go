package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/benwarner/staffplan/pkg/db"
)

// mockViewReportsStore implements ViewReportsStore for testing
type mockViewReportsStore struct {
	runs    []db.Run
	lines   []db.ForecastLine
	records []db.AllocationRecord

	getRunsErr    error
	getRecordsErr error
}

func (m *mockViewReportsStore) GetRuns(ctx context.Context) ([]db.Run, error) {
	if m.getRunsErr != nil {
		return nil, m.getRunsErr
	}
	return m.runs, nil
}

func (m *mockViewReportsStore) GetForecastLines(ctx context.Context, runID string) ([]db.ForecastLine, error) {
	out := []db.ForecastLine{}
	for _, line := range m.lines {
		if line.RunID == runID {
			out = append(out, line)
		}
	}
	return out, nil
}

func (m *mockViewReportsStore) GetAllocationRecords(ctx context.Context, runID string) ([]db.AllocationRecord, error) {
	if m.getRecordsErr != nil {
		return nil, m.getRecordsErr
	}
	return m.records, nil
}

func TestViewReports_SplitsFulfilledAndUnmet(t *testing.T) {
	store := &mockViewReportsStore{
		runs: []db.Run{{ID: "run-1", Start: "2026-01-01", Periods: []string{"2026-01"}}},
		lines: []db.ForecastLine{
			{ID: "L1", RunID: "run-1", Required: 3, Allocated: 3},
			{ID: "L2", RunID: "run-1", Required: 5, Allocated: 1},
			{ID: "L3", RunID: "run-1", Required: 2, Allocated: 1},
		},
	}
	logger := zap.NewNop()

	view, err := ViewReports(context.Background(), store, logger)

	require.NoError(t, err)
	assert.Equal(t, "run-1", view.RunID)
	assert.Equal(t, 3, view.Lines)
	assert.Equal(t, 1, view.Fulfilled)

	// Worst shortage first
	require.Len(t, view.Unmet, 2)
	assert.Equal(t, "L2", view.Unmet[0].ID)
	assert.Equal(t, "L3", view.Unmet[1].ID)
}

func TestViewReports_PhaseTotalsInPipelineOrder(t *testing.T) {
	store := &mockViewReportsStore{
		runs: []db.Run{{ID: "run-1", Start: "2026-01-01"}},
		records: []db.AllocationRecord{
			{Phase: "gap-fill", Requested: 2, Allocated: 1, Shortage: 1},
			{Phase: "primary-exact", Requested: 3, Allocated: 3},
			{Phase: "primary-exact", Requested: 1, Allocated: 0, Shortage: 1},
			{Phase: "proportional", Requested: 2, Allocated: 2},
		},
	}
	logger := zap.NewNop()

	view, err := ViewReports(context.Background(), store, logger)

	require.NoError(t, err)
	require.Len(t, view.Phases, 3)
	assert.Equal(t, PhaseTotals{Phase: "primary-exact", Requested: 4, Allocated: 3, Shortage: 1}, view.Phases[0])
	assert.Equal(t, PhaseTotals{Phase: "gap-fill", Requested: 2, Allocated: 1, Shortage: 1}, view.Phases[1])
	assert.Equal(t, PhaseTotals{Phase: "proportional", Requested: 2, Allocated: 2}, view.Phases[2])
}

func TestViewReports_NoRuns(t *testing.T) {
	store := &mockViewReportsStore{}
	logger := zap.NewNop()

	_, err := ViewReports(context.Background(), store, logger)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no planning runs")
}

func TestViewReports_RecordFetchError(t *testing.T) {
	store := &mockViewReportsStore{
		runs:          []db.Run{{ID: "run-1", Start: "2026-01-01"}},
		getRecordsErr: errors.New("connection refused"),
	}
	logger := zap.NewNop()

	_, err := ViewReports(context.Background(), store, logger)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch allocation records")
}
