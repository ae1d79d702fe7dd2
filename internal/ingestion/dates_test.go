package ingestion

import (
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestParseDateExplicitFormats(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Time
	}{
		{"04.01.21", date(2021, time.January, 4)},
		{"4.1.21", date(2021, time.January, 4)},
		{"04.01.2021", date(2021, time.January, 4)},
		{"2021-01-04", date(2021, time.January, 4)},
		{"04/01/2021", date(2021, time.January, 4)},
		{"04-01-2021", date(2021, time.January, 4)},
		{"2021.01.04", date(2021, time.January, 4)},
		{"2021/01/04", date(2021, time.January, 4)},
		{"25 Jan 2021", date(2021, time.January, 25)},
		{"25 January 2021", date(2021, time.January, 25)},
		{"Jan 25, 2021", date(2021, time.January, 25)},
		{"January 25, 2021", date(2021, time.January, 25)},
	}

	for _, tc := range cases {
		got, ok := ParseDate(tc.raw)
		if !ok {
			t.Fatalf("expected %q to parse", tc.raw)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("%q: expected %s, got %s", tc.raw, tc.want, got)
		}
	}
}

func TestParseDateDayFirstPreference(t *testing.T) {
	got, ok := ParseDate("03/04/21")
	if !ok {
		t.Fatalf("expected date to parse")
	}
	if want := date(2021, time.April, 3); !got.Equal(want) {
		t.Fatalf("expected day-first %s, got %s", want, got)
	}
}

func TestParseDateSerial(t *testing.T) {
	want := date(2021, time.January, 4)

	for _, val := range []any{44200, 44200.0, "44200", "44200,0"} {
		got, ok := ParseDate(val)
		if !ok {
			t.Fatalf("expected serial %v to parse", val)
		}
		if !got.Equal(want) {
			t.Fatalf("serial %v: expected %s, got %s", val, want, got)
		}
	}
}

func TestParseDateSerialOutOfRange(t *testing.T) {
	for _, val := range []any{0, -5, 500001, "600000"} {
		if _, ok := ParseDate(val); ok {
			t.Fatalf("expected %v to be unparseable", val)
		}
	}
}

func TestParseDateRejectsBlankAndErrorValues(t *testing.T) {
	values := []string{
		"", "   ", "#N/A", "#n/a", "#VALUE!", "#REF!", "#DIV/0!",
		"#NAME?", "#NULL!", "#NUM!", "#GETTING_DATA", "-", "—",
	}
	for _, val := range values {
		if _, ok := ParseDate(val); ok {
			t.Fatalf("expected %q to be unparseable", val)
		}
	}
}

func TestParseDateDiscardsTimeOfDay(t *testing.T) {
	got, ok := ParseDate("04.01.2021 00:00:00")
	if !ok {
		t.Fatalf("expected datetime string to parse")
	}
	if want := date(2021, time.January, 4); !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestParseDateNativeTime(t *testing.T) {
	got, ok := ParseDate(time.Date(2021, time.June, 15, 13, 45, 0, 0, time.UTC))
	if !ok {
		t.Fatalf("expected native time to parse")
	}
	if want := date(2021, time.June, 15); !got.Equal(want) {
		t.Fatalf("expected date component %s, got %s", want, got)
	}
}

func TestParseDateStripsByteOrderMark(t *testing.T) {
	got, ok := ParseDate("\uFEFF04.01.21")
	if !ok {
		t.Fatalf("expected BOM-prefixed date to parse")
	}
	if want := date(2021, time.January, 4); !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestParseDateLayoutRoundTrip(t *testing.T) {
	// Day > 12 keeps day-first and month-first layouts unambiguous.
	known := date(2021, time.January, 25)

	for _, layout := range dateLayouts {
		formatted := known.Format(layout)
		got, ok := ParseDate(formatted)
		if !ok {
			t.Fatalf("layout %q: expected %q to parse", layout, formatted)
		}
		if !got.Equal(known) {
			t.Fatalf("layout %q: formatted %q, parsed back %s, want %s", layout, formatted, got, known)
		}
	}
}

func TestParseDateUnparseableGarbage(t *testing.T) {
	for _, val := range []string{"not a date", "12.34.5678", "??", "abc 123"} {
		if got, ok := ParseDate(val); ok {
			t.Fatalf("expected %q to be unparseable, got %s", val, got)
		}
	}
}
