package importer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount accepts "1234.56", "1,234.56", "1.234,56" and "-12,30".
// The right-most of '.' and ',' is taken as the decimal separator when both
// appear; a lone ',' is always decimal.
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), " ", "")

	dot, comma := strings.LastIndex(clean, "."), strings.LastIndex(clean, ",")

	switch {
	case comma > dot:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	case dot > comma && comma >= 0:
		clean = strings.ReplaceAll(clean, ",", "")
	}

	return decimal.NewFromString(clean)
}
