package services

import (
	"time"

	"github.com/benwarner/staffplan/pkg/db"
)

// findLatestRun finds the run with the most recent start date
func findLatestRun(runs []db.Run) *db.Run {
	if len(runs) == 0 {
		return nil
	}

	latest := &runs[0]
	latestDate, err := time.Parse("2006-01-02", latest.Start)
	if err != nil {
		return latest
	}

	for i := 1; i < len(runs); i++ {
		currentDate, err := time.Parse("2006-01-02", runs[i].Start)
		if err != nil {
			continue
		}

		if currentDate.After(latestDate) {
			latest = &runs[i]
			latestDate = currentDate
		}
	}

	return latest
}
