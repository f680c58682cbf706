package analysis

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"ponto/internal/timeutil"
)

// Period is an inclusive date window. A zero bound is open.
type Period struct {
	From time.Time
	To   time.Time
}

func AllTime() Period {
	return Period{}
}

// LastDays starts days before today and is open towards the future, so rows
// dated ahead of the clock are still included.
func LastDays(now time.Time, days int) Period {
	return Period{From: timeutil.DateOnly(now).AddDate(0, 0, -days)}
}

func CurrentMonth(now time.Time) Period {
	return Period{From: timeutil.StartOfMonth(now), To: timeutil.EndOfMonth(now)}
}

func MonthOf(month string) (Period, error) {
	parsed, err := time.Parse(timeutil.MonthLayout, strings.TrimSpace(month))
	if err != nil {
		return Period{}, fmt.Errorf("invalid month %q (expected YYYY-MM)", month)
	}
	return Period{From: timeutil.StartOfMonth(parsed), To: timeutil.EndOfMonth(parsed)}, nil
}

func Range(from, to time.Time) (Period, error) {
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return Period{}, fmt.Errorf("invalid range: from must be <= to")
	}
	out := Period{}
	if !from.IsZero() {
		out.From = timeutil.DateOnly(from)
	}
	if !to.IsZero() {
		out.To = timeutil.DateOnly(to)
	}
	return out, nil
}

// ParsePeriod accepts all, month, lastN, YYYY-MM and YYYY-MM-DD..YYYY-MM-DD.
func ParsePeriod(value string, now time.Time) (Period, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	switch {
	case value == "" || value == "all":
		return AllTime(), nil
	case value == "month" || value == "current-month":
		return CurrentMonth(now), nil
	case strings.HasPrefix(value, "last"):
		days, err := strconv.Atoi(strings.TrimPrefix(value, "last"))
		if err != nil || days <= 0 {
			return Period{}, fmt.Errorf("invalid period %q (expected lastN with N > 0)", value)
		}
		return LastDays(now, days), nil
	case strings.Contains(value, ".."):
		parts := strings.SplitN(value, "..", 2)
		from, err := parseBound(parts[0])
		if err != nil {
			return Period{}, err
		}
		to, err := parseBound(parts[1])
		if err != nil {
			return Period{}, err
		}
		return Range(from, to)
	default:
		return MonthOf(value)
	}
}

func parseBound(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
	}
	return parsed, nil
}

func (p Period) Contains(date time.Time) bool {
	day := timeutil.DateOnly(date)
	if !p.From.IsZero() && day.Before(p.From) {
		return false
	}
	if !p.To.IsZero() && day.After(p.To) {
		return false
	}
	return true
}

func (p Period) IsAll() bool {
	return p.From.IsZero() && p.To.IsZero()
}

func (p Period) String() string {
	if p.IsAll() {
		return "all"
	}
	format := func(value time.Time) string {
		if value.IsZero() {
			return ""
		}
		return value.Format("2006-01-02")
	}
	return format(p.From) + ".." + format(p.To)
}
