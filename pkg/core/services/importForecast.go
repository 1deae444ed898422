package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/benwarner/staffplan/internal/config"
	"github.com/benwarner/staffplan/pkg/core/model"
	"github.com/benwarner/staffplan/pkg/db"
)

// ImportResult contains the counts of an import
type ImportResult struct {
	RunID         string
	ForecastLines int
	Workers       int
	SkippedLines  int
}

// ForecastClient provides forecast and roster rows from the upstream
// spreadsheet
type ForecastClient interface {
	ListForecastLines(cfg *config.Config) ([]model.ForecastLine, error)
	ListWorkers(cfg *config.Config) ([]model.WorkerRow, error)
}

// ImportForecastStore defines the database operations needed for an import
type ImportForecastStore interface {
	GetRuns(ctx context.Context) ([]db.Run, error)
	InsertForecastLines(ctx context.Context, lines []db.ForecastLine) error
	InsertWorkers(ctx context.Context, workers []db.Worker) error
}

// ImportForecast pulls forecast and roster rows from the spreadsheet and
// stores them against the latest planning run. Lines for platforms outside
// the configured allowlist are skipped.
func ImportForecast(
	ctx context.Context,
	database ImportForecastStore,
	client ForecastClient,
	cfg *config.Config,
	logger *zap.Logger,
) (*ImportResult, error) {
	runs, err := database.GetRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("no planning runs found - please define a run first")
	}
	targetRun := findLatestRun(runs)
	logger.Debug("Importing into run", zap.String("id", targetRun.ID))

	lines, err := client.ListForecastLines(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast lines: %w", err)
	}
	logger.Debug("Fetched forecast lines", zap.Int("count", len(lines)))

	workerRows, err := client.ListWorkers(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster: %w", err)
	}
	logger.Debug("Fetched roster rows", zap.Int("count", len(workerRows)))

	dbLines := make([]db.ForecastLine, 0, len(lines))
	skipped := 0
	for _, line := range lines {
		if !cfg.AllowsPlatform(line.Platform) {
			skipped++
			continue
		}
		dbLines = append(dbLines, db.ForecastLine{
			ID:       line.ID,
			RunID:    targetRun.ID,
			Platform: line.Platform,
			State:    line.State,
			Skill:    line.Skill,
			Period:   line.Period,
			Volume:   line.Volume,
			Required: line.Required,
		})
	}
	if skipped > 0 {
		logger.Warn("Skipped forecast lines for unknown platforms", zap.Int("count", skipped))
	}

	dbWorkers := make([]db.Worker, 0, len(workerRows))
	for _, row := range workerRows {
		dbWorkers = append(dbWorkers, db.Worker{
			ID:       row.ID,
			Name:     row.Name,
			Platform: row.Platform,
			State:    row.State,
			Skills:   row.Skills,
			Status:   string(row.Status),
			Periods:  row.Periods,
		})
	}

	if err := database.InsertForecastLines(ctx, dbLines); err != nil {
		return nil, fmt.Errorf("failed to save forecast lines: %w", err)
	}
	if err := database.InsertWorkers(ctx, dbWorkers); err != nil {
		return nil, fmt.Errorf("failed to save roster: %w", err)
	}

	logger.Info("Import completed",
		zap.String("run_id", targetRun.ID),
		zap.Int("forecast_lines", len(dbLines)),
		zap.Int("workers", len(dbWorkers)))

	return &ImportResult{
		RunID:         targetRun.ID,
		ForecastLines: len(dbLines),
		Workers:       len(dbWorkers),
		SkippedLines:  skipped,
	}, nil
}
