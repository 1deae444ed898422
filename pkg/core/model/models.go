package model

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// ForecastLine represents one demand line of a forecast as imported
type ForecastLine struct {
	ID       string
	Platform string
	State    string // two-letter code, or "N/A" for any state
	Skill    string // free text, canonicalized by the engine
	Period   string
	Volume   float64 // forecast volume, the proportional-distribution weight
	Required int     // required FTE
}

// WorkerRow represents one roster member as imported
type WorkerRow struct {
	ID       string
	Name     string
	Platform string
	State    string // free text, resolved to eligibility codes by the engine
	Skills   string // free text, parsed into a Skillset by the engine
	Status   Status
	Periods  []string // periods the worker is available for
}

// Run represents one planning run covering a period horizon
type Run struct {
	ID      string
	Start   string // Date format
	Periods []string
}
