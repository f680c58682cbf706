package punch

import "fmt"

const SecondsPerDay = 24 * 60 * 60

// TimeOfDay is a wall-clock time without date or zone, stored as seconds since
// midnight in [0, SecondsPerDay).
type TimeOfDay int

func NewTimeOfDay(hour, minute, second int) (TimeOfDay, bool) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return 0, false
	}
	return TimeOfDay(hour*3600 + minute*60 + second), true
}

// FromSeconds clamps total into the valid range.
func FromSeconds(total int) TimeOfDay {
	if total < 0 {
		return 0
	}
	if total >= SecondsPerDay {
		return SecondsPerDay - 1
	}
	return TimeOfDay(total)
}

func (t TimeOfDay) Hour() int {
	return int(t) / 3600
}

func (t TimeOfDay) Minute() int {
	return (int(t) % 3600) / 60
}

func (t TimeOfDay) Second() int {
	return int(t) % 60
}

func (t TimeOfDay) Seconds() int {
	return int(t)
}

func (t TimeOfDay) MinuteOfDay() int {
	return int(t) / 60
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// Clock renders the time as HH:MM.
func (t TimeOfDay) Clock() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t TimeOfDay) Ptr() *TimeOfDay {
	out := t
	return &out
}

// FormatClock renders an optional time, empty when absent.
func FormatClock(value *TimeOfDay) string {
	if value == nil {
		return ""
	}
	return value.Clock()
}
