package analysis

import (
	"sort"

	"ponto/internal/textutil"
	"ponto/punch"
)

// Details lists the flagged days of one employee inside the period, oldest
// first. Unknown employees yield an empty list.
func Details(records []punch.DerivedRecord, employeeName string, period Period) []punch.DerivedRecord {
	key := textutil.FoldKey(employeeName)
	out := make([]punch.DerivedRecord, 0)
	if key == "" {
		return out
	}

	for _, record := range records {
		if !record.Flagged() || employeeKey(record.Record) != key {
			continue
		}
		if !period.Contains(record.Record.Date) {
			continue
		}
		out = append(out, record)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Record.Date.Before(out[j].Record.Date)
	})
	return out
}
