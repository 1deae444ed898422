package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/benwarner/staffplan/pkg/db"
)

// PhaseTotals aggregates the audit records of one allocation phase
type PhaseTotals struct {
	Phase     string
	Requested int
	Allocated int
	Shortage  int
}

// ReportView is the operator-facing view of the latest run's outcome
type ReportView struct {
	RunID   string
	Periods []string

	// Lines is the number of forecast lines in the run
	Lines int

	// Fulfilled is the number of lines fully allocated
	Fulfilled int

	// Unmet lists the lines still short, worst shortage first
	Unmet []db.ForecastLine

	// Phases aggregates audit records per allocation phase, in pipeline
	// order
	Phases []PhaseTotals
}

// ViewReportsStore defines the database operations needed to build the
// report view
type ViewReportsStore interface {
	GetRuns(ctx context.Context) ([]db.Run, error)
	GetForecastLines(ctx context.Context, runID string) ([]db.ForecastLine, error)
	GetAllocationRecords(ctx context.Context, runID string) ([]db.AllocationRecord, error)
}

// ViewReports builds the report view for the latest planning run
func ViewReports(ctx context.Context, database ViewReportsStore, logger *zap.Logger) (*ReportView, error) {
	runs, err := database.GetRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("no planning runs found")
	}
	targetRun := findLatestRun(runs)
	logger.Debug("Building reports for run", zap.String("id", targetRun.ID))

	lines, err := database.GetForecastLines(ctx, targetRun.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast lines: %w", err)
	}

	records, err := database.GetAllocationRecords(ctx, targetRun.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch allocation records: %w", err)
	}

	view := &ReportView{
		RunID:   targetRun.ID,
		Periods: targetRun.Periods,
		Lines:   len(lines),
	}

	for _, line := range lines {
		if line.Allocated >= line.Required {
			view.Fulfilled++
			continue
		}
		view.Unmet = append(view.Unmet, line)
	}
	sort.SliceStable(view.Unmet, func(i, j int) bool {
		return view.Unmet[i].Required-view.Unmet[i].Allocated >
			view.Unmet[j].Required-view.Unmet[j].Allocated
	})

	phaseOrder := []string{"primary-exact", "primary-multi", "gap-fill", "proportional"}
	totals := make(map[string]*PhaseTotals)
	for _, rec := range records {
		pt, ok := totals[rec.Phase]
		if !ok {
			pt = &PhaseTotals{Phase: rec.Phase}
			totals[rec.Phase] = pt
		}
		pt.Requested += rec.Requested
		pt.Allocated += rec.Allocated
		pt.Shortage += rec.Shortage
	}
	for _, phase := range phaseOrder {
		if pt, ok := totals[phase]; ok {
			view.Phases = append(view.Phases, *pt)
		}
	}

	logger.Debug("Report view built",
		zap.Int("lines", view.Lines),
		zap.Int("fulfilled", view.Fulfilled),
		zap.Int("unmet", len(view.Unmet)))

	return view, nil
}
