package punch

import (
	"strconv"
	"strings"
	"time"
)

// Field identifies one of the date and time cells of a RawRow. Values combine
// as a bit set.
type Field uint8

const (
	FieldDate Field = 1 << iota
	FieldActualIn
	FieldActualOut
	FieldScheduledIn
	FieldScheduledOut
)

// RawRow is one spreadsheet row as delivered by the loader. Cells keep their
// literal text; interpretation happens in the analysis package. NumericCells
// marks the cells the sheet stored as numbers, whose text is then the raw
// number (a serial day or a fraction of a day).
type RawRow struct {
	RowNumber    int
	Source       string
	Employee     string
	Date         string
	ActualIn     string
	ActualOut    string
	ScheduledIn  string
	ScheduledOut string
	Supervisor   string
	NumericCells Field
}

// Value returns the cell as float64 when it was stored as a number and as its
// literal text otherwise.
func (r RawRow) Value(field Field) any {
	var text string
	switch field {
	case FieldDate:
		text = r.Date
	case FieldActualIn:
		text = r.ActualIn
	case FieldActualOut:
		text = r.ActualOut
	case FieldScheduledIn:
		text = r.ScheduledIn
	case FieldScheduledOut:
		text = r.ScheduledOut
	default:
		return nil
	}
	if r.NumericCells&field != 0 {
		if number, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
			return number
		}
	}
	return text
}

// PunchRecord is the normalized record for one employee on one day.
type PunchRecord struct {
	EmployeeName string
	EmployeeKey  string
	Date         time.Time
	ActualIn     *TimeOfDay
	ActualOut    *TimeOfDay
	ScheduledIn  *TimeOfDay
	ScheduledOut *TimeOfDay
	Supervisor   string
	RowNumber    int
	Source       string
}

// DerivedRecord wraps a PunchRecord with the deviation flags computed for it.
type DerivedRecord struct {
	Record          PunchRecord
	WorkedMinutes   *int
	ExpectedMinutes *int
	OvertimeMinutes int
	IsOvertime      bool
	IsOutOfShift    bool
	Month           string
}

// Flagged reports whether the day is overtime or out of shift.
func (d DerivedRecord) Flagged() bool {
	return d.IsOvertime || d.IsOutOfShift
}

// Badge is the podium marker of the top three ranking entries.
type Badge string

const (
	BadgeNone   Badge = ""
	BadgeGold   Badge = "gold"
	BadgeSilver Badge = "silver"
	BadgeBronze Badge = "bronze"
)

// BadgeForRank returns the podium badge for ranks 1 to 3.
func BadgeForRank(rank int) Badge {
	switch rank {
	case 1:
		return BadgeGold
	case 2:
		return BadgeSilver
	case 3:
		return BadgeBronze
	default:
		return BadgeNone
	}
}

// RankingEntry is one row of a deviation ranking. Month and Supervisor are
// only set when the ranking was grouped by them.
type RankingEntry struct {
	EmployeeName         string
	Month                string
	Supervisor           string
	OutOfShiftCount      int
	OvertimeCount        int
	OvertimeMinutesTotal int
	Rank                 int
	Badge                Badge
}
