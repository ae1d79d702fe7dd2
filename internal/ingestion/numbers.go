package ingestion

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseNumber converts a locale-variant numeric string to an exact decimal.
// Spaces (including non-breaking spaces used as thousands separators) are
// stripped and comma decimal separators become dots before conversion.
// Blank input and anything that is not a number report false. Values are
// kept as exact decimals because they represent large impression counts
// that must not pick up binary floating-point rounding.
func ParseNumber(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Decimal{}, false
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
