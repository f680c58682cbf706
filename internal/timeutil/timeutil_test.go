package timeutil

import (
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	t.Parallel()

	input := time.Date(2026, 3, 1, 14, 37, 9, 123, time.Local)
	got := StartOfDay(input)

	if got.Year() != 2026 || got.Month() != time.March || got.Day() != 1 {
		t.Fatalf("unexpected date: %v", got)
	}
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Fatalf("expected midnight, got %v", got)
	}
}

func TestDateOnly(t *testing.T) {
	t.Parallel()

	zone := time.FixedZone("BRT", -3*3600)
	got := DateOnly(time.Date(2025, 7, 14, 23, 30, 0, 0, zone))
	want := time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSameDay(t *testing.T) {
	t.Parallel()

	a := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	b := time.Date(2026, 3, 1, 18, 30, 0, 0, time.Local)
	c := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)

	if !SameDay(a, b) {
		t.Fatalf("expected same day for %v and %v", a, b)
	}
	if SameDay(a, c) {
		t.Fatalf("expected different days for %v and %v", a, c)
	}
}

func TestMonthBounds(t *testing.T) {
	t.Parallel()

	value := time.Date(2024, 2, 17, 0, 0, 0, 0, time.UTC)
	if got := StartOfMonth(value); got.Day() != 1 || got.Month() != time.February {
		t.Fatalf("unexpected start of month: %v", got)
	}
	if got := EndOfMonth(value); got.Day() != 29 {
		t.Fatalf("expected leap-year end of month 29, got %v", got)
	}
	if got := MonthKey(value); got != "2024-02" {
		t.Fatalf("unexpected month key %q", got)
	}
}

func TestMinutesFromMidnight(t *testing.T) {
	t.Parallel()

	input := time.Date(2026, 3, 1, 13, 25, 0, 0, time.Local)
	if got := MinutesFromMidnight(input); got != 805 {
		t.Fatalf("expected 805, got %d", got)
	}
}
