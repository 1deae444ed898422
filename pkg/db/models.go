package db

// Run represents a database planning run record
type Run struct {
	ID      string
	Start   string // Date format
	Periods []string
}

// ForecastLine represents a database forecast demand line record
type ForecastLine struct {
	ID        string
	RunID     string
	Platform  string
	State     string
	Skill     string
	Period    string
	Volume    float64
	Required  int
	Allocated int
}

// Worker represents a database roster record
type Worker struct {
	ID       string
	Name     string
	Platform string
	State    string
	Skills   string
	Status   string
	Periods  []string
}

// AllocationRecord represents one audit entry of an allocation run
type AllocationRecord struct {
	ID        string
	RunID     string
	DemandID  string
	Phase     string
	WorkerIDs []string
	Requested int
	Allocated int
	Shortage  int
}
