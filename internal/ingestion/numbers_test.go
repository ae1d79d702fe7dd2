package ingestion

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseNumber(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"1000", "1000"},
		{"1000,5", "1000.5"},
		{"1 000,5", "1000.5"},
		{"1 234 567", "1234567"},
		{"0,25", "0.25"},
		{"-42", "-42"},
	}

	for _, tc := range cases {
		got, ok := ParseNumber(tc.raw)
		if !ok {
			t.Fatalf("expected %q to parse", tc.raw)
		}
		want, err := decimal.NewFromString(tc.want)
		if err != nil {
			t.Fatalf("bad expectation %q: %v", tc.want, err)
		}
		if !got.Equal(want) {
			t.Fatalf("%q: expected %s, got %s", tc.raw, want, got)
		}
	}
}

func TestParseNumberKeepsFullPrecision(t *testing.T) {
	got, ok := ParseNumber("12345678901234567,89")
	if !ok {
		t.Fatalf("expected large decimal to parse")
	}
	if got.String() != "12345678901234567.89" {
		t.Fatalf("expected exact decimal, got %s", got.String())
	}
}

func TestParseNumberRejectsBlankAndGarbage(t *testing.T) {
	for _, raw := range []string{"", "   ", "abc", "1,2,3"} {
		if _, ok := ParseNumber(raw); ok {
			t.Fatalf("expected %q to be unparseable", raw)
		}
	}
}
