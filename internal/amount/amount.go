// Package amount normalizes locale-formatted amounts into decimals.
//
// Bank exports from Argentine banks format money as "1.050.000,00":
// dot as thousands separator, comma as decimal separator. Cells may
// also arrive as true numbers or be empty or garbage; a malformed
// cell must never abort a reconciliation run, so everything that
// cannot be parsed becomes zero.
package amount

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Parse converts a text cell into a decimal using locale rules: dots
// are thousands separators, comma is the decimal separator. Empty,
// "NaN" and unparsable values yield zero.
func Parse(val string) decimal.Decimal {
	val = strings.TrimSpace(val)
	if val == "" || strings.EqualFold(val, "nan") {
		return decimal.Zero
	}

	cleaned := strings.ReplaceAll(val, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseNumber converts a numeric cell, already machine-formatted
// ("-1234.56"), into a decimal. Unparsable values yield zero.
func ParseNumber(val string) decimal.Decimal {
	val = strings.TrimSpace(val)
	if val == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero
	}
	return d
}
