package ingestion

import "strings"

// Canonical field names the validator operates on.
const (
	fieldAdvertiser  = "advertiser"
	fieldBrand       = "brand"
	fieldStart       = "start"
	fieldEnd         = "end"
	fieldFormat      = "format"
	fieldPlatform    = "platform"
	fieldImpressions = "impressions"
)

// columnAliases maps cleaned header spellings (lowercased, all spaces
// removed) to canonical field names. Source files arrive with truncated
// and misspelled headers, so known variants are listed alongside the
// canonical spellings.
var columnAliases = map[string]string{
	"advertis":    fieldAdvertiser,
	"advertiser":  fieldAdvertiser,
	"brand":       fieldBrand,
	"start":       fieldStart,
	"end":         fieldEnd,
	"format":      fieldFormat,
	"platforr":    fieldPlatform,
	"platform":    fieldPlatform,
	"impr":        fieldImpressions,
	"impressions": fieldImpressions,
}

// columnMap resolves canonical field names to column positions.
type columnMap map[string]int

// normalizeColumns maps header labels to canonical field names. Matching is
// case-insensitive with internal whitespace removed; unrecognized headers
// are left unmapped and ignored downstream. The first column claiming a
// canonical name wins.
func normalizeColumns(headers []string) columnMap {
	mapping := make(columnMap)
	for idx, header := range headers {
		key := strings.ToLower(strings.Join(strings.Fields(header), ""))
		canonical, ok := columnAliases[key]
		if !ok {
			continue
		}
		if _, taken := mapping[canonical]; taken {
			continue
		}
		mapping[canonical] = idx
	}
	return mapping
}

// value returns the trimmed cell for a canonical field, or "" when the
// column is absent or the row is short.
func (m columnMap) value(row []string, field string) string {
	idx, ok := m[field]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// has reports whether a canonical field was matched in the header row.
func (m columnMap) has(field string) bool {
	_, ok := m[field]
	return ok
}
