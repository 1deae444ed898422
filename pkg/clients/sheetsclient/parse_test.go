package sheetsclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func forecastHeader() []interface{} {
	return []interface{}{"Line ID", "Platform", "State", "Skill", "Period", "Volume", "Required FTE"}
}

func TestParseForecastLines_ValidRows(t *testing.T) {
	raw := [][]interface{}{
		forecastHeader(),
		{"f1", "Amisys", "TX", "Claims", "2026-04", "1200", "5"},
		{"f2", "Facets", "N/A", "Appeals", "2026-04", "300", "2"},
	}

	lines, err := parseForecastLines(raw)

	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "f1", lines[0].ID)
	assert.Equal(t, 1200.0, lines[0].Volume)
	assert.Equal(t, 5, lines[0].Required)
	assert.Equal(t, "N/A", lines[1].State)
}

func TestParseForecastLines_SkipsIncompleteRows(t *testing.T) {
	raw := [][]interface{}{
		forecastHeader(),
		{"", "Amisys", "TX", "Claims", "2026-04", "100", "5"}, // no ID
		{"f2", "Amisys", "TX", "", "2026-04", "100", "5"},     // no skill
		{"f3", "Amisys", "TX", "Claims", "2026-04", "100", "not-a-number"},
		{"f4", "Amisys", "TX", "Claims", "2026-04", "100", "3"},
	}

	lines, err := parseForecastLines(raw)

	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "f4", lines[0].ID)
}

func TestParseForecastLines_MissingHeaderColumn(t *testing.T) {
	raw := [][]interface{}{
		{"Line ID", "Platform", "State", "Skill", "Period", "Volume"}, // no Required FTE
	}

	_, err := parseForecastLines(raw)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Required FTE")
}

func TestParseWorkers_ValidRows(t *testing.T) {
	raw := [][]interface{}{
		{"Worker ID", "Name", "Platform", "State", "Skills", "Status", "Periods"},
		{"w1", "Dana Reyes", "Amisys", "TX, NM", "Claims / Appeals", "Active", "2026-04, 2026-05"},
		{"", "No ID", "Amisys", "TX", "Claims", "Active", ""},
	}

	workers, err := parseWorkers(raw)

	require.NoError(t, err)
	require.Len(t, workers, 1)
	assert.Equal(t, "w1", workers[0].ID)
	assert.Equal(t, "TX, NM", workers[0].State, "state stays raw for the engine")
	assert.Equal(t, []string{"2026-04", "2026-05"}, workers[0].Periods)
}

func TestSplitPeriods(t *testing.T) {
	assert.Nil(t, splitPeriods("  "))
	assert.Equal(t, []string{"2026-04"}, splitPeriods("2026-04"))
	assert.Equal(t, []string{"2026-04", "2026-05"}, splitPeriods(" 2026-04 , 2026-05 ,"))
}
