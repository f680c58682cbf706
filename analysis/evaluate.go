package analysis

import (
	"ponto/internal/timeutil"
	"ponto/punch"
)

const (
	// DefaultOvertimeToleranceMinutes is the grace above the scheduled duration
	// before a day counts as overtime.
	DefaultOvertimeToleranceMinutes = 15
	// DefaultShiftToleranceMinutes is the allowed distance between clock-in and
	// scheduled shift start.
	DefaultShiftToleranceMinutes = 60
)

// Tolerances are the allowed deviations in minutes before a day is flagged.
type Tolerances struct {
	OvertimeMinutes   int
	ShiftStartMinutes int
}

func DefaultTolerances() Tolerances {
	return Tolerances{
		OvertimeMinutes:   DefaultOvertimeToleranceMinutes,
		ShiftStartMinutes: DefaultShiftToleranceMinutes,
	}
}

// Deviation holds the derived values for one set of actual and scheduled times.
type Deviation struct {
	WorkedMinutes   *int
	ExpectedMinutes *int
	OvertimeMinutes int
	IsOvertime      bool
	IsOutOfShift    bool
}

// Evaluator derives the deviation flags of punch records under fixed tolerances.
type Evaluator struct {
	tolerances Tolerances
}

func NewEvaluator(tolerances Tolerances) Evaluator {
	return Evaluator{tolerances: tolerances}
}

func (e Evaluator) Tolerances() Tolerances {
	return e.tolerances
}

// MinutesBetween returns whole minutes from start to end. An end earlier than
// start is read as falling on the next day.
func MinutesBetween(start, end punch.TimeOfDay) int {
	endSeconds := end.Seconds()
	if endSeconds < start.Seconds() {
		endSeconds += punch.SecondsPerDay
	}
	return (endSeconds - start.Seconds()) / 60
}

func (e Evaluator) Evaluate(actualIn, actualOut, scheduledIn, scheduledOut *punch.TimeOfDay) Deviation {
	var out Deviation

	if actualIn != nil && actualOut != nil {
		worked := MinutesBetween(*actualIn, *actualOut)
		out.WorkedMinutes = &worked
	}
	if scheduledIn != nil && scheduledOut != nil {
		expected := MinutesBetween(*scheduledIn, *scheduledOut)
		out.ExpectedMinutes = &expected
	}
	if out.WorkedMinutes != nil && out.ExpectedMinutes != nil {
		out.OvertimeMinutes = max(0, *out.WorkedMinutes-*out.ExpectedMinutes)
	}
	out.IsOvertime = out.OvertimeMinutes > e.tolerances.OvertimeMinutes

	if actualIn != nil && scheduledIn != nil {
		delta := actualIn.MinuteOfDay() - scheduledIn.MinuteOfDay()
		if delta < 0 {
			delta = -delta
		}
		out.IsOutOfShift = delta > e.tolerances.ShiftStartMinutes
	}

	return out
}

func (e Evaluator) EvaluateRecord(record punch.PunchRecord) punch.DerivedRecord {
	deviation := e.Evaluate(record.ActualIn, record.ActualOut, record.ScheduledIn, record.ScheduledOut)
	return punch.DerivedRecord{
		Record:          record,
		WorkedMinutes:   deviation.WorkedMinutes,
		ExpectedMinutes: deviation.ExpectedMinutes,
		OvertimeMinutes: deviation.OvertimeMinutes,
		IsOvertime:      deviation.IsOvertime,
		IsOutOfShift:    deviation.IsOutOfShift,
		Month:           timeutil.MonthKey(record.Date),
	}
}

func (e Evaluator) EvaluateAll(records []punch.PunchRecord) []punch.DerivedRecord {
	out := make([]punch.DerivedRecord, 0, len(records))
	for _, record := range records {
		out = append(out, e.EvaluateRecord(record))
	}
	return out
}
