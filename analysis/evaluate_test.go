package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ponto/punch"
)

func clock(t *testing.T, value string) *punch.TimeOfDay {
	t.Helper()
	parsed := NormalizeTime(value)
	require.NotNil(t, parsed, "clock %q", value)
	return parsed
}

func TestMinutesBetween(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 540, MinutesBetween(punch.TimeOfDay(8*3600), punch.TimeOfDay(17*3600)))
	assert.Equal(t, 0, MinutesBetween(punch.TimeOfDay(8*3600), punch.TimeOfDay(8*3600)))
	assert.Equal(t, 480, MinutesBetween(punch.TimeOfDay(22*3600), punch.TimeOfDay(6*3600)))
	assert.Equal(t, 0, MinutesBetween(punch.TimeOfDay(100), punch.TimeOfDay(159)))
}

func TestMinutesBetweenOvernightMatchesNextDay(t *testing.T) {
	t.Parallel()

	for start := 0; start < punch.SecondsPerDay; start += 3599 {
		for end := 0; end < start; end += 2711 {
			a := punch.TimeOfDay(start)
			b := punch.TimeOfDay(end)
			nextDay := (end + punch.SecondsPerDay - start) / 60
			assert.Equal(t, nextDay, MinutesBetween(a, b), "start %s end %s", a, b)
		}
	}
}

func TestEvaluateOvertimeWithinShift(t *testing.T) {
	t.Parallel()

	evaluator := NewEvaluator(DefaultTolerances())
	got := evaluator.Evaluate(clock(t, "08:05"), clock(t, "18:20"), clock(t, "08:00"), clock(t, "17:00"))

	require.NotNil(t, got.ExpectedMinutes)
	require.NotNil(t, got.WorkedMinutes)
	assert.Equal(t, 540, *got.ExpectedMinutes)
	assert.Equal(t, 615, *got.WorkedMinutes)
	assert.Equal(t, 75, got.OvertimeMinutes)
	assert.True(t, got.IsOvertime)
	assert.False(t, got.IsOutOfShift)
}

func TestEvaluateOutOfShift(t *testing.T) {
	t.Parallel()

	evaluator := NewEvaluator(DefaultTolerances())
	got := evaluator.Evaluate(clock(t, "10:30"), nil, clock(t, "08:00"), clock(t, "17:00"))
	assert.True(t, got.IsOutOfShift)

	got = evaluator.Evaluate(clock(t, "09:00"), nil, clock(t, "08:00"), nil)
	assert.False(t, got.IsOutOfShift, "exactly the tolerance is not flagged")
}

func TestEvaluateMissingActualOut(t *testing.T) {
	t.Parallel()

	evaluator := NewEvaluator(DefaultTolerances())
	got := evaluator.Evaluate(clock(t, "06:00"), nil, clock(t, "08:00"), clock(t, "17:00"))

	assert.Nil(t, got.WorkedMinutes)
	assert.Equal(t, 0, got.OvertimeMinutes)
	assert.False(t, got.IsOvertime)
	assert.True(t, got.IsOutOfShift)
}

func TestEvaluateToleranceBoundaries(t *testing.T) {
	t.Parallel()

	evaluator := NewEvaluator(DefaultTolerances())
	got := evaluator.Evaluate(clock(t, "08:00"), clock(t, "17:15"), clock(t, "08:00"), clock(t, "17:00"))
	assert.Equal(t, 15, got.OvertimeMinutes)
	assert.False(t, got.IsOvertime)

	got = evaluator.Evaluate(clock(t, "08:00"), clock(t, "16:00"), clock(t, "08:00"), clock(t, "17:00"))
	assert.Equal(t, 0, got.OvertimeMinutes, "undertime clamps to zero")

	strict := NewEvaluator(Tolerances{OvertimeMinutes: 0, ShiftStartMinutes: 0})
	got = strict.Evaluate(clock(t, "08:01"), clock(t, "17:01"), clock(t, "08:00"), clock(t, "17:00"))
	assert.True(t, got.IsOutOfShift)
	assert.False(t, got.IsOvertime)
}

func TestEvaluateOvernightShift(t *testing.T) {
	t.Parallel()

	evaluator := NewEvaluator(DefaultTolerances())
	got := evaluator.Evaluate(clock(t, "22:00"), clock(t, "07:00"), clock(t, "22:00"), clock(t, "06:00"))

	assert.Equal(t, 540, *got.WorkedMinutes)
	assert.Equal(t, 480, *got.ExpectedMinutes)
	assert.Equal(t, 60, got.OvertimeMinutes)
	assert.True(t, got.IsOvertime)
}

func TestEvaluateRecordIsPure(t *testing.T) {
	t.Parallel()

	evaluator := NewEvaluator(DefaultTolerances())
	record := punch.PunchRecord{
		EmployeeName: "Ana",
		EmployeeKey:  "ana",
		Date:         time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		ActualIn:     clock(t, "08:05"),
		ActualOut:    clock(t, "18:20"),
		ScheduledIn:  clock(t, "08:00"),
		ScheduledOut: clock(t, "17:00"),
	}

	first := evaluator.EvaluateRecord(record)
	second := evaluator.EvaluateRecord(record)
	assert.Equal(t, first, second)
	assert.Equal(t, "2024-03", first.Month)
	assert.Equal(t, "08:05:00", record.ActualIn.String(), "input record is untouched")

	all := evaluator.EvaluateAll([]punch.PunchRecord{record, record})
	require.Len(t, all, 2)
	assert.Equal(t, first, all[1])
}
