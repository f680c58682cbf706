package analysis

import (
	"sort"
	"strings"

	"ponto/internal/textutil"
	"ponto/punch"
)

// GroupBy selects the optional partitions of a ranking. Employee is always
// part of the key; month and supervisor compose independently.
type GroupBy struct {
	Month      bool
	Supervisor bool
}

// ParseGroupBy reads a comma separated list such as "month,supervisor".
func ParseGroupBy(value string) (GroupBy, error) {
	var out GroupBy
	for _, part := range strings.Split(value, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "", "employee":
		case "month":
			out.Month = true
		case "supervisor":
			out.Supervisor = true
		default:
			return GroupBy{}, &UnknownGroupError{Value: part}
		}
	}
	return out, nil
}

type UnknownGroupError struct {
	Value string
}

func (e *UnknownGroupError) Error() string {
	return "unsupported grouping " + strings.TrimSpace(e.Value) + " (supported: employee, month, supervisor)"
}

type groupKey struct {
	employee   string
	month      string
	supervisor string
}

type groupTotals struct {
	entry punch.RankingEntry
	key   groupKey
}

// Aggregate ranks employees by flagged days. Records that are neither
// overtime nor out of shift do not contribute.
func Aggregate(records []punch.DerivedRecord, group GroupBy) []punch.RankingEntry {
	byKey := make(map[groupKey]*groupTotals)
	order := make([]groupKey, 0)

	for _, record := range records {
		if !record.Flagged() {
			continue
		}

		key := groupKey{employee: employeeKey(record.Record)}
		if group.Month {
			key.month = record.Month
		}
		if group.Supervisor {
			key.supervisor = textutil.FoldKey(record.Record.Supervisor)
		}

		totals, ok := byKey[key]
		if !ok {
			totals = &groupTotals{key: key}
			totals.entry.EmployeeName = record.Record.EmployeeName
			if group.Month {
				totals.entry.Month = record.Month
			}
			if group.Supervisor {
				totals.entry.Supervisor = textutil.CollapseSpaces(record.Record.Supervisor)
			}
			byKey[key] = totals
			order = append(order, key)
		}

		if record.IsOutOfShift {
			totals.entry.OutOfShiftCount++
		}
		if record.IsOvertime {
			totals.entry.OvertimeCount++
			totals.entry.OvertimeMinutesTotal += record.OvertimeMinutes
		}
	}

	groups := make([]*groupTotals, 0, len(order))
	for _, key := range order {
		totals := byKey[key]
		if totals.entry.OutOfShiftCount == 0 && totals.entry.OvertimeCount == 0 {
			continue
		}
		groups = append(groups, totals)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if a.entry.OutOfShiftCount != b.entry.OutOfShiftCount {
			return a.entry.OutOfShiftCount > b.entry.OutOfShiftCount
		}
		if a.entry.OvertimeMinutesTotal != b.entry.OvertimeMinutesTotal {
			return a.entry.OvertimeMinutesTotal > b.entry.OvertimeMinutesTotal
		}
		if a.key.employee != b.key.employee {
			return a.key.employee < b.key.employee
		}
		if a.key.month != b.key.month {
			return a.key.month < b.key.month
		}
		return a.key.supervisor < b.key.supervisor
	})

	out := make([]punch.RankingEntry, 0, len(groups))
	for i, totals := range groups {
		entry := totals.entry
		entry.Rank = i + 1
		entry.Badge = punch.BadgeForRank(entry.Rank)
		out = append(out, entry)
	}
	return out
}

func employeeKey(record punch.PunchRecord) string {
	if record.EmployeeKey != "" {
		return record.EmployeeKey
	}
	return textutil.FoldKey(record.EmployeeName)
}
