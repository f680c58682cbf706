package analysis

import (
	"ponto/internal/textutil"
	"ponto/punch"
)

// Filter narrows records before they are tabled or ranked.
type Filter struct {
	Period     Period
	Supervisor string
}

func (f Filter) Match(record punch.DerivedRecord) bool {
	if !f.Period.Contains(record.Record.Date) {
		return false
	}
	if supervisor := textutil.FoldKey(f.Supervisor); supervisor != "" {
		return textutil.FoldKey(record.Record.Supervisor) == supervisor
	}
	return true
}

func (f Filter) Apply(records []punch.DerivedRecord) []punch.DerivedRecord {
	out := make([]punch.DerivedRecord, 0, len(records))
	for _, record := range records {
		if f.Match(record) {
			out = append(out, record)
		}
	}
	return out
}

// Summary carries the headline counters shown above a ranking.
type Summary struct {
	Records              int
	OutOfShiftDays       int
	OvertimeDays         int
	OvertimeMinutesTotal int
	Employees            int
}

func Summarize(records []punch.DerivedRecord) Summary {
	employees := make(map[string]struct{})
	summary := Summary{Records: len(records)}
	for _, record := range records {
		employees[employeeKey(record.Record)] = struct{}{}
		if record.IsOutOfShift {
			summary.OutOfShiftDays++
		}
		if record.IsOvertime {
			summary.OvertimeDays++
			summary.OvertimeMinutesTotal += record.OvertimeMinutes
		}
	}
	summary.Employees = len(employees)
	return summary
}
