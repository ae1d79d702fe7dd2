package ingestion

import "testing"

func TestNormalizeColumnsAliases(t *testing.T) {
	headers := []string{"Advertis", "Brand", "Start", "End", "Format", "Platforr", "Impr"}

	columns := normalizeColumns(headers)

	want := map[string]int{
		fieldAdvertiser:  0,
		fieldBrand:       1,
		fieldStart:       2,
		fieldEnd:         3,
		fieldFormat:      4,
		fieldPlatform:    5,
		fieldImpressions: 6,
	}
	for field, idx := range want {
		got, ok := columns[field]
		if !ok {
			t.Fatalf("expected field %s to be mapped", field)
		}
		if got != idx {
			t.Fatalf("field %s: expected column %d, got %d", field, idx, got)
		}
	}
}

func TestNormalizeColumnsCaseAndWhitespace(t *testing.T) {
	columns := normalizeColumns([]string{"  sTaRt ", "E N D", "IMPRESSIONS"})

	if columns[fieldStart] != 0 {
		t.Fatalf("expected start at column 0, got %v", columns)
	}
	if columns[fieldEnd] != 1 {
		t.Fatalf("expected end at column 1, got %v", columns)
	}
	if columns[fieldImpressions] != 2 {
		t.Fatalf("expected impressions at column 2, got %v", columns)
	}
}

func TestNormalizeColumnsIgnoresUnknownHeaders(t *testing.T) {
	columns := normalizeColumns([]string{"Start", "Budget", "End"})

	if len(columns) != 2 {
		t.Fatalf("expected 2 mapped columns, got %d", len(columns))
	}
	if columns.has("budget") {
		t.Fatalf("did not expect unknown header to be mapped")
	}
}

func TestNormalizeColumnsFirstClaimWins(t *testing.T) {
	columns := normalizeColumns([]string{"Platform", "Platforr"})

	if columns[fieldPlatform] != 0 {
		t.Fatalf("expected first platform column to win, got %v", columns)
	}
}
