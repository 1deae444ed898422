package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/benwarner/staffplan/pkg/db"
)

// PeriodFormat is the canonical period key layout (year-month)
const PeriodFormat = "2006-01"

// DefineRunResult represents the result of defining a new planning run
type DefineRunResult struct {
	Run *db.Run
}

// DefineRun creates a new planning run covering periodCount monthly periods.
// It finds the latest existing run, starts the new horizon the month after
// that run ends (or the coming month if none exists), expands the horizon
// into period keys via a monthly recurrence rule, and persists the run
// record.
func DefineRun(ctx context.Context, database db.RunStore, logger *zap.Logger, periodCount int) (*DefineRunResult, error) {
	if periodCount <= 0 {
		return nil, fmt.Errorf("period count must be positive, got %d", periodCount)
	}

	logger.Info("Defining new planning run", zap.Int("period_count", periodCount))

	runs, err := database.GetRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}
	logger.Debug("Found existing runs", zap.Int("count", len(runs)))

	var startDate time.Time
	if len(runs) == 0 {
		startDate = firstOfNextMonth(time.Now())
		logger.Info("No existing runs found, starting from the coming month",
			zap.Time("start_date", startDate))
	} else {
		latest := findLatestRun(runs)
		logger.Debug("Latest run found",
			zap.String("id", latest.ID),
			zap.String("start", latest.Start),
			zap.Int("period_count", len(latest.Periods)))

		latestStart, err := time.Parse("2006-01-02", latest.Start)
		if err != nil {
			return nil, fmt.Errorf("failed to parse latest run start date: %w", err)
		}

		// The new horizon begins the month after the latest run's last period
		latestEnd := latestStart.AddDate(0, len(latest.Periods), 0)
		startDate = firstOfNextMonth(latestEnd.AddDate(0, 0, -1))
		logger.Info("Calculated start date from latest run",
			zap.Time("latest_end", latestEnd),
			zap.Time("new_start", startDate))
	}

	periods, err := expandPeriods(startDate, periodCount)
	if err != nil {
		return nil, fmt.Errorf("failed to expand period horizon: %w", err)
	}

	run := &db.Run{
		ID:      uuid.New().String(),
		Start:   startDate.Format("2006-01-02"),
		Periods: periods,
	}

	logger.Info("Creating new run", zap.String("id", run.ID), zap.String("start", run.Start))

	if err := database.InsertRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}

	logger.Info("Run created successfully",
		zap.String("run_id", run.ID),
		zap.String("first_period", periods[0]),
		zap.String("last_period", periods[len(periods)-1]))

	return &DefineRunResult{Run: run}, nil
}

// expandPeriods generates periodCount monthly period keys starting at
// startDate using a monthly recurrence rule
func expandPeriods(startDate time.Time, periodCount int) ([]string, error) {
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.MONTHLY,
		Count:   periodCount,
		Dtstart: startDate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build recurrence rule: %w", err)
	}

	occurrences := rule.All()
	periods := make([]string, len(occurrences))
	for i, occ := range occurrences {
		periods[i] = occ.Format(PeriodFormat)
	}
	return periods, nil
}

// firstOfNextMonth returns the first day of the month after the given date
func firstOfNextMonth(from time.Time) time.Time {
	firstOfCurrent := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	return firstOfCurrent.AddDate(0, 1, 0)
}
