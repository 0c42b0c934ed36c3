package schedule

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice converts a locale-formatted price cell ("$ 1.234,56") into a
// decimal. "." is a thousands separator and "," the decimal separator.
// Missing or unparseable cells are worth zero; a bad price must never
// sink the record.
func ParsePrice(cell string) decimal.Decimal {
	s := strings.TrimSpace(cell)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
