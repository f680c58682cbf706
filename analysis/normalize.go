package analysis

import (
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"ponto/internal/timeutil"
	"ponto/punch"
)

// timeParser is one entry of the ordered string-format table. convert reports
// false when the matched value is out of range, letting later entries try.
type timeParser struct {
	pattern *regexp.Regexp
	convert func(value string, groups []string) (punch.TimeOfDay, bool)
}

var timeParsers = []timeParser{
	{pattern: regexp.MustCompile(`^(\d{1,2}):(\d{2}):(\d{2})$`), convert: clockGroups},    // HH:MM:SS
	{pattern: regexp.MustCompile(`^(\d{1,2}):(\d{2})$`), convert: clockGroups},             // HH:MM
	{pattern: regexp.MustCompile(`^0?[.,]\d+$`), convert: fractionString},                  // 0.25, ,5
	{pattern: regexp.MustCompile(`^(\d{1,2})\.(\d{2})$`), convert: clockGroups},            // HH.MM
	{pattern: regexp.MustCompile(`^(\d{1,2})-(\d{2})$`), convert: clockGroups},             // HH-MM
	{pattern: regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2})(?::(\d{2}))?\s*([AP])\.?M\.?$`), convert: meridiemGroups},
	{pattern: regexp.MustCompile(`^\d{1,4}[-/.]\d{1,2}[-/.]\d{1,4}[T ]`), convert: dateTimeString},
	{pattern: regexp.MustCompile(`^-?\d*[.,]?\d+(?:[eE][-+]?\d+)?$`), convert: decimalString},
}

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02-01-2006 15:04:05",
	"02-01-2006 15:04",
	"02.01.2006 15:04",
}

var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"02.01.2006",
	"2006-01-02",
	"2006/01/02",
}

// NormalizeTime converts a raw cell value to a time of day. It never panics
// and returns nil for empty, unparsable or out-of-range input.
func NormalizeTime(raw any) (out *punch.TimeOfDay) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()

	switch value := raw.(type) {
	case nil:
		return nil
	case punch.TimeOfDay:
		return value.Ptr()
	case *punch.TimeOfDay:
		if value == nil {
			return nil
		}
		return value.Ptr()
	case time.Time:
		return timeOfDayFromTime(value)
	case *time.Time:
		if value == nil {
			return nil
		}
		return timeOfDayFromTime(*value)
	case string:
		return normalizeTimeString(value)
	case *string:
		if value == nil {
			return nil
		}
		return normalizeTimeString(*value)
	}

	reflected := reflect.ValueOf(raw)
	switch reflected.Kind() {
	case reflect.Float32, reflect.Float64:
		return fractionOfDay(reflected.Float())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fractionOfDay(float64(reflected.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fractionOfDay(float64(reflected.Uint()))
	}
	return nil
}

func normalizeTimeString(value string) *punch.TimeOfDay {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	for _, parser := range timeParsers {
		groups := parser.pattern.FindStringSubmatch(value)
		if groups == nil {
			continue
		}
		if parsed, ok := parser.convert(value, groups); ok {
			return &parsed
		}
	}
	return nil
}

func clockGroups(_ string, groups []string) (punch.TimeOfDay, bool) {
	hour, _ := strconv.Atoi(groups[1])
	minute, _ := strconv.Atoi(groups[2])
	second := 0
	if len(groups) > 3 && groups[3] != "" {
		second, _ = strconv.Atoi(groups[3])
	}
	return punch.NewTimeOfDay(hour, minute, second)
}

func meridiemGroups(_ string, groups []string) (punch.TimeOfDay, bool) {
	hour, _ := strconv.Atoi(groups[1])
	minute, _ := strconv.Atoi(groups[2])
	second := 0
	if groups[3] != "" {
		second, _ = strconv.Atoi(groups[3])
	}
	if hour < 1 || hour > 12 {
		return 0, false
	}
	hour %= 12
	if strings.EqualFold(groups[4], "p") {
		hour += 12
	}
	return punch.NewTimeOfDay(hour, minute, second)
}

// dateTimeString keeps only the clock part of a rendered date-time.
func dateTimeString(value string, _ []string) (punch.TimeOfDay, bool) {
	for _, layout := range dateTimeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			if tod := timeOfDayFromTime(parsed); tod != nil {
				return *tod, true
			}
		}
	}
	return 0, false
}

// clockShape is a dotted clock such as 25.00 that failed clockGroups.
var clockShape = regexp.MustCompile(`^\d{1,2}[.,]\d{2}$`)

// decimalString reads any other number as a fraction of a day, except an
// out-of-range dotted clock, which stays unreadable.
func decimalString(value string, groups []string) (punch.TimeOfDay, bool) {
	if clockShape.MatchString(value) {
		return 0, false
	}
	return fractionString(value, groups)
}

func fractionString(value string, _ []string) (punch.TimeOfDay, bool) {
	number, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	tod := fractionOfDay(number)
	if tod == nil {
		return 0, false
	}
	return *tod, true
}

// fractionOfDay reads x as a share of 24 hours, as spreadsheets store times.
func fractionOfDay(x float64) *punch.TimeOfDay {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil
	}
	seconds := math.Round(x * punch.SecondsPerDay)
	if seconds < 0 {
		seconds = 0
	}
	if seconds > punch.SecondsPerDay-1 {
		seconds = punch.SecondsPerDay - 1
	}
	return punch.FromSeconds(int(seconds)).Ptr()
}

func timeOfDayFromTime(value time.Time) *punch.TimeOfDay {
	if value.IsZero() {
		return nil
	}
	tod, ok := punch.NewTimeOfDay(value.Hour(), value.Minute(), value.Second())
	if !ok {
		return nil
	}
	return &tod
}

// NormalizeDate resolves a calendar date from day-first strings, ISO dates,
// native time values or spreadsheet serial day numbers.
func NormalizeDate(raw any) (out time.Time, ok bool) {
	defer func() {
		if recover() != nil {
			out, ok = time.Time{}, false
		}
	}()

	switch value := raw.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if value.IsZero() {
			return time.Time{}, false
		}
		return timeutil.DateOnly(value), true
	case string:
		return normalizeDateString(value)
	case float64:
		return serialDate(value)
	case int:
		return serialDate(float64(value))
	}
	return time.Time{}, false
}

func normalizeDateString(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return timeutil.DateOnly(parsed), true
		}
	}
	for _, layout := range dateTimeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return timeutil.DateOnly(parsed), true
		}
	}
	if number, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64); err == nil {
		return serialDate(number)
	}
	return time.Time{}, false
}

func serialDate(serial float64) (time.Time, bool) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) || serial < 1 || serial > 2958465 {
		return time.Time{}, false
	}
	parsed, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, false
	}
	return timeutil.DateOnly(parsed), true
}
