package ingestion

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// serialEpoch is the legacy spreadsheet day-zero (1899-12-30). Serial dates
// are day counts from this origin.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// maxSerialDays bounds serial-date interpretation; anything above is not a
// plausible day count.
const maxSerialDays = 500000

// spreadsheetErrorValues are cell contents that spreadsheets emit in place
// of data. They parse to nothing rather than to a wrong date.
var spreadsheetErrorValues = map[string]struct{}{
	"#N/A":          {},
	"#VALUE!":       {},
	"#REF!":         {},
	"#DIV/0!":       {},
	"#NAME?":        {},
	"#NULL!":        {},
	"#NUM!":         {},
	"#GETTING_DATA": {},
	"-":             {},
	"—":             {},
}

// dateLayouts is the ordered list of explicit date formats, day-first
// variants before month-first. Non-padded layouts accept both "4.1.21" and
// "04.01.21". First successful layout wins.
var dateLayouts = []string{
	"2.1.06",
	"2.1.2006",
	"2006-1-2",
	"2/1/06",
	"2/1/2006",
	"2-1-06",
	"2-1-2006",
	"2006.1.2",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006/1/2",
	"1/2/2006",
	"1.2.2006",
	"1-2-2006",
}

// dayFirstLayouts and monthFirstLayouts back the generic last-resort parse:
// once preferring day-first interpretation, once month-first, with common
// datetime shapes included.
var dayFirstLayouts = []string{
	"2/1/2006 15:04:05",
	"2.1.2006 15:04:05",
	"2-1-2006 15:04:05",
	"2/1/2006 15:04",
	"2 Jan 2006 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

var monthFirstLayouts = []string{
	"1/2/2006 15:04:05",
	"1.2.2006 15:04:05",
	"1-2-2006 15:04:05",
	"1/2/2006 15:04",
	"Jan 2 2006",
	"January 2 2006",
	"Jan 2, 2006 15:04:05",
}

// dateStrategy attempts one interpretation of a raw string cell. Strategies
// run in order and short-circuit on the first success, so adding a format
// is a pure addition.
type dateStrategy func(string) (time.Time, bool)

var stringDateStrategies = []dateStrategy{
	parseSerialDigits,
	parseSerialNumber,
	parseExplicitLayouts,
	parseGenericDayFirst,
	parseGenericMonthFirst,
}

// ParseDate converts one raw cell value of unknown representation into a
// calendar date. It is maximally permissive across spreadsheet exports but
// never guesses: any value the cascade cannot resolve reports false.
func ParseDate(val any) (time.Time, bool) {
	switch v := val.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return dateOnly(v), true
	case int:
		return parseSerialOrTimestamp(float64(v))
	case int64:
		return parseSerialOrTimestamp(float64(v))
	case float32:
		return parseSerialOrTimestamp(float64(v))
	case float64:
		return parseSerialOrTimestamp(v)
	case string:
		return parseDateString(v)
	default:
		return time.Time{}, false
	}
}

func parseDateString(raw string) (time.Time, bool) {
	s := strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), "\uFEFF"))
	if s == "" || isSpreadsheetError(s) {
		return time.Time{}, false
	}
	for _, strategy := range stringDateStrategies {
		if d, ok := strategy(s); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

func isSpreadsheetError(s string) bool {
	_, ok := spreadsheetErrorValues[strings.ToUpper(strings.TrimSpace(s))]
	return ok
}

// parseSerialDigits treats purely numeric strings of at least four digits
// as spreadsheet serial day counts.
func parseSerialDigits(s string) (time.Time, bool) {
	if len(s) < 4 || !isDigits(s) {
		return time.Time{}, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return time.Time{}, false
	}
	return serialToDate(f)
}

// parseSerialNumber interprets comma-decimal numbers as serial day counts.
func parseSerialNumber(s string) (time.Time, bool) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return time.Time{}, false
	}
	return serialToDate(f)
}

// parseExplicitLayouts runs the ordered layout list against the value. If
// the value carries a trailing time-of-day or other fragment after a space,
// the portion before the first space is retried on its own.
func parseExplicitLayouts(s string) (time.Time, bool) {
	if d, ok := tryLayouts(s, dateLayouts); ok {
		return d, true
	}
	if head, _, found := strings.Cut(s, " "); found {
		return tryLayouts(strings.TrimSpace(head), dateLayouts)
	}
	return time.Time{}, false
}

func parseGenericDayFirst(s string) (time.Time, bool) {
	return tryLayouts(s, dayFirstLayouts)
}

func parseGenericMonthFirst(s string) (time.Time, bool) {
	return tryLayouts(s, monthFirstLayouts)
}

func tryLayouts(s string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return dateOnly(ts), true
		}
	}
	return time.Time{}, false
}

// parseSerialOrTimestamp handles native numeric cells: serial day count
// first, unix-epoch seconds as the fallback for values far outside the
// serial range.
func parseSerialOrTimestamp(f float64) (time.Time, bool) {
	if d, ok := serialToDate(f); ok {
		return d, true
	}
	if f >= 1e9 && f < 1e11 {
		return dateOnly(time.Unix(int64(f), 0).UTC()), true
	}
	return time.Time{}, false
}

// serialToDate converts a spreadsheet serial day count to a date. Valid
// serials are in (0, maxSerialDays].
func serialToDate(f float64) (time.Time, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, false
	}
	days := int(math.Round(f))
	if days <= 0 || days > maxSerialDays {
		return time.Time{}, false
	}
	return serialEpoch.AddDate(0, 0, days), true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
