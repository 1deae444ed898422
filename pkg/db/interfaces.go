package db

import "context"

// RunStore defines the interface for planning run database operations
type RunStore interface {
	GetRuns(ctx context.Context) ([]Run, error)
	InsertRun(ctx context.Context, run *Run) error
}

// ForecastStore defines the interface for forecast database operations
type ForecastStore interface {
	GetForecastLines(ctx context.Context, runID string) ([]ForecastLine, error)
	InsertForecastLines(ctx context.Context, lines []ForecastLine) error
	SetLineAllocated(ctx context.Context, lineID string, allocated int) error
}

// RosterStore defines the interface for roster database operations
type RosterStore interface {
	GetWorkers(ctx context.Context) ([]Worker, error)
	InsertWorkers(ctx context.Context, workers []Worker) error
}

// AllocationStore defines the interface for allocation audit records
type AllocationStore interface {
	GetAllocationRecords(ctx context.Context, runID string) ([]AllocationRecord, error)
	InsertAllocationRecords(ctx context.Context, records []AllocationRecord) error
}

// Database defines the interface for all database operations; postgres.DB
// implements it
type Database interface {
	RunStore
	ForecastStore
	RosterStore
	AllocationStore
}
