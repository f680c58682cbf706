package analysis

import (
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"ponto/internal/textutil"
	"ponto/punch"
)

// Snapshot is one loaded copy of the source rows. It is never modified after
// NewSnapshot; a reload builds a new one.
type Snapshot struct {
	ID       uuid.UUID
	Source   string
	LoadedAt time.Time
	Rows     []punch.RawRow
}

func NewSnapshot(source string, rows []punch.RawRow, now time.Time) Snapshot {
	return Snapshot{
		ID:       uuid.New(),
		Source:   source,
		LoadedAt: now.UTC(),
		Rows:     append([]punch.RawRow(nil), rows...),
	}
}

// SkippedRow records a row that could not become a PunchRecord.
type SkippedRow struct {
	RowNumber int
	Source    string
	Reason    string
}

// BuildRecords normalizes raw rows. Bad time cells become absent; rows without
// an employee name or a readable date are skipped.
func BuildRecords(rows []punch.RawRow) ([]punch.PunchRecord, []SkippedRow) {
	records := make([]punch.PunchRecord, 0, len(rows))
	skipped := make([]SkippedRow, 0)

	for _, row := range rows {
		name := textutil.CollapseSpaces(row.Employee)
		if name == "" {
			skipped = append(skipped, SkippedRow{RowNumber: row.RowNumber, Source: row.Source, Reason: "missing employee name"})
			continue
		}
		date, ok := NormalizeDate(row.Value(punch.FieldDate))
		if !ok {
			skipped = append(skipped, SkippedRow{RowNumber: row.RowNumber, Source: row.Source, Reason: "unreadable date " + row.Date})
			continue
		}

		records = append(records, punch.PunchRecord{
			EmployeeName: name,
			EmployeeKey:  textutil.FoldKey(name),
			Date:         date,
			ActualIn:     cellTime(row, punch.FieldActualIn),
			ActualOut:    cellTime(row, punch.FieldActualOut),
			ScheduledIn:  cellTime(row, punch.FieldScheduledIn),
			ScheduledOut: cellTime(row, punch.FieldScheduledOut),
			Supervisor:   textutil.CollapseSpaces(row.Supervisor),
			RowNumber:    row.RowNumber,
			Source:       row.Source,
		})
	}
	return records, skipped
}

// cellTime normalizes one time cell. A numeric cell of one or more is a full
// date-time serial, so only its clock part is kept.
func cellTime(row punch.RawRow, field punch.Field) *punch.TimeOfDay {
	value := row.Value(field)
	if serial, ok := value.(float64); ok && serial >= 1 {
		if parsed, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return NormalizeTime(parsed)
		}
	}
	return NormalizeTime(value)
}

// Result is the outcome of one analysis pass over a snapshot.
type Result struct {
	SnapshotID uuid.UUID
	Source     string
	LoadedAt   time.Time
	Tolerances Tolerances
	Records    []punch.DerivedRecord
	Skipped    []SkippedRow
}

func Run(snapshot Snapshot, tolerances Tolerances) *Result {
	records, skipped := BuildRecords(snapshot.Rows)
	return &Result{
		SnapshotID: snapshot.ID,
		Source:     snapshot.Source,
		LoadedAt:   snapshot.LoadedAt,
		Tolerances: tolerances,
		Records:    NewEvaluator(tolerances).EvaluateAll(records),
		Skipped:    skipped,
	}
}

func (r *Result) Table(filter Filter) []punch.DerivedRecord {
	return filter.Apply(r.Records)
}

func (r *Result) Ranking(filter Filter, group GroupBy) []punch.RankingEntry {
	return Aggregate(filter.Apply(r.Records), group)
}

func (r *Result) Details(employeeName string, period Period) []punch.DerivedRecord {
	return Details(r.Records, employeeName, period)
}

func (r *Result) Summary(filter Filter) Summary {
	return Summarize(filter.Apply(r.Records))
}
