package output

import (
	"github.com/shopspring/decimal"

	"ponto/punch"
)

var recordHeaders = []string{
	"Employee", "Date", "Month", "Supervisor",
	"ActualIn", "ActualOut", "ScheduledIn", "ScheduledOut",
	"WorkedMinutes", "ExpectedMinutes", "OvertimeMinutes", "OvertimeHours",
	"IsOvertime", "IsOutOfShift", "Source", "Row",
}

var rankingHeaders = []string{
	"Rank", "Badge", "Employee", "Month", "Supervisor",
	"OutOfShiftCount", "OvertimeCount", "OvertimeMinutesTotal", "OvertimeHoursTotal",
}

var sixty = decimal.NewFromInt(60)

// OvertimeHours converts minutes to hours rounded to two places.
func OvertimeHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(sixty).Round(2)
}

// recordCells returns one typed cell per header. Absent durations stay nil so
// each writer can leave the cell empty.
func recordCells(record punch.DerivedRecord) []any {
	return []any{
		record.Record.EmployeeName,
		record.Record.Date.Format("2006-01-02"),
		record.Month,
		record.Record.Supervisor,
		punch.FormatClock(record.Record.ActualIn),
		punch.FormatClock(record.Record.ActualOut),
		punch.FormatClock(record.Record.ScheduledIn),
		punch.FormatClock(record.Record.ScheduledOut),
		optionalInt(record.WorkedMinutes),
		optionalInt(record.ExpectedMinutes),
		record.OvertimeMinutes,
		OvertimeHours(record.OvertimeMinutes),
		record.IsOvertime,
		record.IsOutOfShift,
		record.Record.Source,
		record.Record.RowNumber,
	}
}

func rankingCells(entry punch.RankingEntry) []any {
	return []any{
		entry.Rank,
		string(entry.Badge),
		entry.EmployeeName,
		entry.Month,
		entry.Supervisor,
		entry.OutOfShiftCount,
		entry.OvertimeCount,
		entry.OvertimeMinutesTotal,
		OvertimeHours(entry.OvertimeMinutesTotal),
	}
}

func optionalInt(value *int) any {
	if value == nil {
		return nil
	}
	return *value
}
