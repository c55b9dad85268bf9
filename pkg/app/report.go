package app

import (
	"time"

	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/timeutil"
)

// ReportSection groups the completed to-dos of one day.
type ReportSection struct {
	Date  string       `json:"date"`
	Items []entry.Item `json:"items"`
}

// ReportResult lists completed to-dos between two dates, inclusive.
type ReportResult struct {
	Since    string          `json:"since"`
	Until    string          `json:"until"`
	Sections []ReportSection `json:"sections"`
	Total    int             `json:"total"`
}

// Report returns completed to-dos grouped by day for the given dates. Days
// without completions are left out.
func (s *Service) Report(dates []time.Time) ReportResult {
	snap := s.Snapshot()
	res := ReportResult{Sections: []ReportSection{}}
	if len(dates) == 0 {
		return res
	}
	res.Since = timeutil.DateKey(dates[0])
	res.Until = timeutil.DateKey(dates[len(dates)-1])

	for _, key := range timeutil.Keys(dates) {
		var done []entry.Item
		for _, it := range snap.Items(key) {
			if it.Completed() {
				done = append(done, it)
			}
		}
		if len(done) == 0 {
			continue
		}
		res.Sections = append(res.Sections, ReportSection{Date: key, Items: done})
		res.Total += len(done)
	}
	return res
}
