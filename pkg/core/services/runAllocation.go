package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/benwarner/staffplan/pkg/core/engine"
	"github.com/benwarner/staffplan/pkg/db"
)

// AllocationResult contains the results of one allocation run
type AllocationResult struct {
	RunID   string
	Periods []string

	// RowCount and WorkerCount are the inputs that survived validation
	RowCount    int
	WorkerCount int

	Summary         engine.Summary
	UnmetDemand     []engine.UnmetDemand
	Unutilized      []engine.UnutilizedBucket
	UnmetAllotments []engine.UnmetAllotment
	Records         []engine.AllocationRecord
}

// RunAllocationStore defines the database operations needed for an
// allocation run
type RunAllocationStore interface {
	GetRuns(ctx context.Context) ([]db.Run, error)
	GetForecastLines(ctx context.Context, runID string) ([]db.ForecastLine, error)
	GetWorkers(ctx context.Context) ([]db.Worker, error)
	SetLineAllocated(ctx context.Context, lineID string, allocated int) error
	InsertAllocationRecords(ctx context.Context, records []db.AllocationRecord) error
}

// RunAllocation executes the full allocation pipeline against the latest
// planning run: vocabulary extraction, skill parsing, bucket construction,
// the primary pass over every forecast line, then the two bench passes
// (gap-fill and proportional distribution). Allocated quantities and the
// audit ledger are written back unless dryRun is set.
func RunAllocation(
	ctx context.Context,
	database RunAllocationStore,
	logger *zap.Logger,
	dryRun bool,
) (*AllocationResult, error) {
	logger.Debug("Starting allocation run", zap.Bool("dry_run", dryRun))

	// Step 1: resolve the latest planning run
	runs, err := database.GetRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("no planning runs found - please define a run first")
	}
	targetRun := findLatestRun(runs)
	logger.Debug("Using latest run",
		zap.String("id", targetRun.ID),
		zap.Strings("periods", targetRun.Periods))

	// Step 2: fetch forecast lines and build demand rows
	lines, err := database.GetForecastLines(ctx, targetRun.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast lines: %w", err)
	}
	logger.Debug("Found forecast lines", zap.Int("count", len(lines)))

	rows, skipped := buildDemandRows(lines)
	if skipped > 0 {
		logger.Warn("Skipped malformed forecast lines", zap.Int("count", skipped))
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no usable forecast lines for run %s", targetRun.ID)
	}

	// Step 3: build the canonical vocabulary from demand skills
	skillTexts := make([]string, len(lines))
	for i, line := range lines {
		skillTexts[i] = line.Skill
	}
	vocab := engine.BuildVocabulary(skillTexts)
	logger.Debug("Built skill vocabulary", zap.Int("terms", len(vocab)))

	// Step 4: fetch the roster and derive worker skillsets and state lists
	workerRows, err := database.GetWorkers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workers: %w", err)
	}
	logger.Debug("Found workers", zap.Int("count", len(workerRows)))

	demandStates := engine.DemandStates(rows)
	pool, bench := buildWorkerPool(workerRows, targetRun.Periods, vocab, demandStates)
	logger.Debug("Prepared worker pool",
		zap.Int("bucketed", len(pool)),
		zap.Int("bench", len(bench)))

	// Step 5: build the bucket index and snapshot it before any mutation
	index := engine.BuildBucketIndex(pool, targetRun.Periods)
	snapshot := index.Snapshot()
	logger.Debug("Built bucket index", zap.Int("total_count", index.TotalCount()))

	// Step 6: primary pass
	ledger := &engine.Ledger{}
	allocator := engine.NewAllocator(index, ledger)
	for _, row := range rows {
		if err := allocator.AllocateRow(row); err != nil {
			return nil, fmt.Errorf("primary allocation failed for line %s: %w", row.ID, err)
		}
	}
	logger.Info("Primary pass completed", zap.Int("records", len(ledger.Records)))

	// Step 7: bench passes
	benchPool := engine.NewBench(bench)
	engine.FillGaps(rows, benchPool, ledger)
	logger.Info("Gap-fill pass completed", zap.Int("bench_remaining", benchPool.Len()))

	unmetAllotments := engine.DistributeSurplus(rows, benchPool, ledger)
	logger.Info("Proportional pass completed",
		zap.Int("bench_remaining", benchPool.Len()),
		zap.Int("unmet_allotments", len(unmetAllotments)))

	// Step 8: consistency check, then reporting views
	if verrs := engine.ValidateRunState(rows, index, ledger); len(verrs) > 0 {
		for _, verr := range verrs {
			logger.Error("Run state inconsistency", zap.String("violation", verr.Error()))
		}
		return nil, fmt.Errorf("allocation produced an inconsistent run state: %d violation(s)", len(verrs))
	}

	summary := engine.BuildSummary(snapshot, index, ledger)
	unmetDemand := engine.UnmetDemandView(rows)
	unutilized := engine.UnutilizedView(index, vocab)

	logger.Info("Allocation completed",
		zap.Int("total_initial", summary.TotalInitial),
		zap.Int("total_allocated", summary.TotalAllocated),
		zap.Int("total_remaining", summary.TotalRemaining),
		zap.Int("unmet_rows", len(unmetDemand)))

	// Step 9: persist unless this is a dry run
	if dryRun {
		logger.Info("Dry run mode - results not saved")
	} else {
		for _, row := range rows {
			if err := database.SetLineAllocated(ctx, row.ID, row.Allocated); err != nil {
				return nil, fmt.Errorf("failed to write back allocation for line %s: %w", row.ID, err)
			}
		}

		dbRecords := convertToDBRecords(targetRun.ID, ledger.Records)
		if err := database.InsertAllocationRecords(ctx, dbRecords); err != nil {
			return nil, fmt.Errorf("failed to save allocation records: %w", err)
		}
		logger.Info("Results saved", zap.Int("records", len(dbRecords)))
	}

	return &AllocationResult{
		RunID:           targetRun.ID,
		Periods:         targetRun.Periods,
		RowCount:        len(rows),
		WorkerCount:     len(pool) + len(bench),
		Summary:         summary,
		UnmetDemand:     unmetDemand,
		Unutilized:      unutilized,
		UnmetAllotments: unmetAllotments,
		Records:         ledger.Records,
	}, nil
}

// buildDemandRows converts forecast lines into engine demand rows. Lines
// missing identifying fields are skipped, not fatal; the count of skipped
// lines is returned for logging.
func buildDemandRows(lines []db.ForecastLine) ([]*engine.DemandRow, int) {
	rows := make([]*engine.DemandRow, 0, len(lines))
	skipped := 0

	for _, line := range lines {
		if line.ID == "" || line.Platform == "" || line.Period == "" ||
			strings.TrimSpace(line.Skill) == "" || line.Required < 0 {
			skipped++
			continue
		}

		state := strings.ToUpper(strings.TrimSpace(line.State))
		if state == "" {
			state = engine.WildcardState
		}

		rows = append(rows, &engine.DemandRow{
			ID:        line.ID,
			Platform:  line.Platform,
			State:     state,
			Skill:     strings.ToLower(strings.TrimSpace(line.Skill)),
			Period:    line.Period,
			Required:  line.Required,
			Allocated: line.Allocated,
			Weight:    line.Volume,
		})
	}

	return rows, skipped
}

// buildWorkerPool expands active roster rows into per-period engine workers.
// Workers whose skill text parses to at least one vocabulary term join the
// bucketed pool; the rest form the bench, redistributed by state eligibility
// in the bench passes.
func buildWorkerPool(
	workerRows []db.Worker,
	runPeriods []string,
	vocab engine.Vocabulary,
	demandStates map[string]bool,
) (pool, bench []engine.Worker) {
	covered := make(map[string]bool, len(runPeriods))
	for _, p := range runPeriods {
		covered[p] = true
	}

	for _, row := range workerRows {
		if row.ID == "" || !strings.EqualFold(row.Status, "Active") {
			continue
		}

		skillset := vocab.ParseSkills(row.Skills)
		stateList := engine.DeriveStateList(row.State, demandStates)

		// A worker with no declared periods is available for the whole run
		periods := row.Periods
		if len(periods) == 0 {
			periods = runPeriods
		}

		for _, period := range periods {
			if !covered[period] {
				continue
			}
			worker := engine.Worker{
				ID:        row.ID,
				Name:      row.Name,
				Platform:  row.Platform,
				RawState:  row.State,
				RawSkills: row.Skills,
				Skillset:  skillset,
				StateList: stateList,
				Period:    period,
			}
			if skillset.Empty() {
				bench = append(bench, worker)
			} else {
				pool = append(pool, worker)
			}
		}
	}

	return pool, bench
}

// convertToDBRecords converts engine ledger records to database audit records
func convertToDBRecords(runID string, records []engine.AllocationRecord) []db.AllocationRecord {
	out := make([]db.AllocationRecord, len(records))
	for i, rec := range records {
		out[i] = db.AllocationRecord{
			ID:        uuid.New().String(),
			RunID:     runID,
			DemandID:  rec.DemandID,
			Phase:     string(rec.Phase),
			WorkerIDs: rec.WorkerIDs,
			Requested: rec.Requested,
			Allocated: rec.Allocated,
			Shortage:  rec.Shortage,
		}
	}
	return out
}
