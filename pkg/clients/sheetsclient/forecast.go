package sheetsclient

import (
	"fmt"
	"strconv"

	"github.com/benwarner/staffplan/internal/config"
	"github.com/benwarner/staffplan/pkg/core/model"
)

// Expected column names in the forecast tab
var forecastFields = []string{
	"Line ID",
	"Platform",
	"State",
	"Skill",
	"Period",
	"Volume",
	"Required FTE",
}

// ListForecastLines retrieves and parses forecast demand lines from the
// configured spreadsheet
func (c *Client) ListForecastLines(cfg *config.Config) ([]model.ForecastLine, error) {
	values, err := c.GetValues(cfg.ForecastSheetID, cfg.ForecastTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get forecast data: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("forecast tab is empty")
	}

	lines, err := parseForecastLines(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse forecast lines: %w", err)
	}

	return lines, nil
}

// parseForecastLines converts raw spreadsheet data into ForecastLine structs.
// Rows missing an ID, platform, skill or period are skipped, not fatal.
func parseForecastLines(raw [][]interface{}) ([]model.ForecastLine, error) {
	if len(raw) < 1 {
		return nil, fmt.Errorf("no header row found")
	}

	indexes, err := fieldIndexes(raw[0], forecastFields)
	if err != nil {
		return nil, err
	}

	lines := make([]model.ForecastLine, 0, len(raw)-1)
	for i := 1; i < len(raw); i++ {
		row := raw[i]

		id := getField(indexes, "Line ID", row)
		platform := getField(indexes, "Platform", row)
		skill := getField(indexes, "Skill", row)
		period := getField(indexes, "Period", row)
		if id == "" || platform == "" || skill == "" || period == "" {
			continue
		}

		volume, _ := strconv.ParseFloat(getField(indexes, "Volume", row), 64)
		required, err := strconv.Atoi(getField(indexes, "Required FTE", row))
		if err != nil || required < 0 {
			continue
		}

		lines = append(lines, model.ForecastLine{
			ID:       id,
			Platform: platform,
			State:    getField(indexes, "State", row),
			Skill:    skill,
			Period:   period,
			Volume:   volume,
			Required: required,
		})
	}

	return lines, nil
}
