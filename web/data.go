package web

import (
	"time"

	"github.com/shopspring/decimal"

	"ponto/analysis"
	"ponto/output"
	"ponto/punch"
)

type RecordRow struct {
	Employee        string          `json:"employee"`
	Date            string          `json:"date"`
	Month           string          `json:"month"`
	Supervisor      string          `json:"supervisor,omitempty"`
	ActualIn        string          `json:"actualIn"`
	ActualOut       string          `json:"actualOut"`
	ScheduledIn     string          `json:"scheduledIn"`
	ScheduledOut    string          `json:"scheduledOut"`
	WorkedMinutes   *int            `json:"workedMinutes"`
	ExpectedMinutes *int            `json:"expectedMinutes"`
	OvertimeMinutes int             `json:"overtimeMinutes"`
	OvertimeHours   decimal.Decimal `json:"overtimeHours"`
	IsOvertime      bool            `json:"isOvertime"`
	IsOutOfShift    bool            `json:"isOutOfShift"`
	Source          string          `json:"source"`
	Row             int             `json:"row"`
}

type RankingRow struct {
	Rank                 int             `json:"rank"`
	Badge                string          `json:"badge,omitempty"`
	Employee             string          `json:"employee"`
	Month                string          `json:"month,omitempty"`
	Supervisor           string          `json:"supervisor,omitempty"`
	OutOfShiftCount      int             `json:"outOfShiftCount"`
	OvertimeCount        int             `json:"overtimeCount"`
	OvertimeMinutesTotal int             `json:"overtimeMinutesTotal"`
	OvertimeHoursTotal   decimal.Decimal `json:"overtimeHoursTotal"`
}

type SummaryView struct {
	SnapshotID           string    `json:"snapshotId"`
	Source               string    `json:"source"`
	LoadedAt             time.Time `json:"loadedAt"`
	Period               string    `json:"period"`
	Records              int       `json:"records"`
	SkippedRows          int       `json:"skippedRows"`
	OutOfShiftDays       int       `json:"outOfShiftDays"`
	OvertimeDays         int       `json:"overtimeDays"`
	OvertimeMinutesTotal int       `json:"overtimeMinutesTotal"`
	Employees            int       `json:"employees"`
}

func BuildRecordRows(records []punch.DerivedRecord) []RecordRow {
	out := make([]RecordRow, 0, len(records))
	for _, record := range records {
		out = append(out, RecordRow{
			Employee:        record.Record.EmployeeName,
			Date:            record.Record.Date.Format("2006-01-02"),
			Month:           record.Month,
			Supervisor:      record.Record.Supervisor,
			ActualIn:        punch.FormatClock(record.Record.ActualIn),
			ActualOut:       punch.FormatClock(record.Record.ActualOut),
			ScheduledIn:     punch.FormatClock(record.Record.ScheduledIn),
			ScheduledOut:    punch.FormatClock(record.Record.ScheduledOut),
			WorkedMinutes:   record.WorkedMinutes,
			ExpectedMinutes: record.ExpectedMinutes,
			OvertimeMinutes: record.OvertimeMinutes,
			OvertimeHours:   output.OvertimeHours(record.OvertimeMinutes),
			IsOvertime:      record.IsOvertime,
			IsOutOfShift:    record.IsOutOfShift,
			Source:          record.Record.Source,
			Row:             record.Record.RowNumber,
		})
	}
	return out
}

func BuildRankingRows(entries []punch.RankingEntry) []RankingRow {
	out := make([]RankingRow, 0, len(entries))
	for _, entry := range entries {
		out = append(out, RankingRow{
			Rank:                 entry.Rank,
			Badge:                string(entry.Badge),
			Employee:             entry.EmployeeName,
			Month:                entry.Month,
			Supervisor:           entry.Supervisor,
			OutOfShiftCount:      entry.OutOfShiftCount,
			OvertimeCount:        entry.OvertimeCount,
			OvertimeMinutesTotal: entry.OvertimeMinutesTotal,
			OvertimeHoursTotal:   output.OvertimeHours(entry.OvertimeMinutesTotal),
		})
	}
	return out
}

func BuildSummaryView(result *analysis.Result, filter analysis.Filter) SummaryView {
	summary := result.Summary(filter)
	return SummaryView{
		SnapshotID:           result.SnapshotID.String(),
		Source:               result.Source,
		LoadedAt:             result.LoadedAt,
		Period:               filter.Period.String(),
		Records:              summary.Records,
		SkippedRows:          len(result.Skipped),
		OutOfShiftDays:       summary.OutOfShiftDays,
		OvertimeDays:         summary.OvertimeDays,
		OvertimeMinutesTotal: summary.OvertimeMinutesTotal,
		Employees:            summary.Employees,
	}
}
