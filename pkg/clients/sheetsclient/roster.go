package sheetsclient

import (
	"fmt"
	"strings"

	"github.com/benwarner/staffplan/internal/config"
	"github.com/benwarner/staffplan/pkg/core/model"
)

// Expected column names in the roster tab
var rosterFields = []string{
	"Worker ID",
	"Name",
	"Platform",
	"State",
	"Skills",
	"Status",
	"Periods",
}

// ListWorkers retrieves and parses roster members from the configured
// spreadsheet
func (c *Client) ListWorkers(cfg *config.Config) ([]model.WorkerRow, error) {
	values, err := c.GetValues(cfg.ForecastSheetID, cfg.RosterTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster data: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("roster tab is empty")
	}

	workers, err := parseWorkers(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}

	return workers, nil
}

// parseWorkers converts raw spreadsheet data into WorkerRow structs. Rows
// with no worker ID are skipped. The state and skill fields stay raw; the
// engine derives eligibility and skillsets from them.
func parseWorkers(raw [][]interface{}) ([]model.WorkerRow, error) {
	if len(raw) < 1 {
		return nil, fmt.Errorf("no header row found")
	}

	indexes, err := fieldIndexes(raw[0], rosterFields)
	if err != nil {
		return nil, err
	}

	workers := make([]model.WorkerRow, 0, len(raw)-1)
	for i := 1; i < len(raw); i++ {
		row := raw[i]

		id := getField(indexes, "Worker ID", row)
		if id == "" {
			continue
		}

		workers = append(workers, model.WorkerRow{
			ID:       id,
			Name:     getField(indexes, "Name", row),
			Platform: getField(indexes, "Platform", row),
			State:    getField(indexes, "State", row),
			Skills:   getField(indexes, "Skills", row),
			Status:   model.Status(getField(indexes, "Status", row)),
			Periods:  splitPeriods(getField(indexes, "Periods", row)),
		})
	}

	return workers, nil
}

// splitPeriods parses a comma-separated period cell, e.g. "2026-04, 2026-05"
func splitPeriods(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}

	parts := strings.Split(cell, ",")
	periods := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			periods = append(periods, trimmed)
		}
	}
	return periods
}
