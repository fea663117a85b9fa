package ingestion

import (
	"strconv"
	"strings"

	"go-payslip/internal/payrollitem"
)

var currencyReplacer = strings.NewReplacer(
	",", "",
	"，", "",
	"¥", "",
	"￥", "",
	"$", "",
	" ", "",
	"　", "",
)

// ConvertCellValue normalizes one raw CSV cell according to its item type.
// time/days items keep the raw text (empty stays "", never 0) because values
// like "12:30" or "20.5日" are display strings, not numbers. Everything else
// is treated as a currency amount. The second return value is false when a
// non-empty cell could not be parsed and fell back to the zero value; the
// caller logs it and continues.
func ConvertCellValue(raw string, itemType string) (any, bool) {
	switch itemType {
	case payrollitem.TypeTime, payrollitem.TypeDays:
		return strings.TrimSpace(raw), true
	default:
		return ParseAmount(raw)
	}
}

// ParseAmount strips thousands separators and currency glyphs and parses the
// rest as a float. A blank cell is 0; a non-numeric cell is 0 with ok=false.
func ParseAmount(raw string) (float64, bool) {
	cleaned := strings.TrimSpace(currencyReplacer.Replace(raw))
	if cleaned == "" {
		return 0, true
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
