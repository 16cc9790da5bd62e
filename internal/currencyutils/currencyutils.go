// Package currencyutils parses and formats the currency strings found in AR extracts.
package currencyutils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// symbolStripper removes thousands separators, currency symbols and blanks.
var symbolStripper = strings.NewReplacer(",", "", "$", "", " ", "", "\u00a0", "")

// ParseCurrency converts an extract amount into a decimal rounded to cents.
//
// A dash or an empty string is zero. Parentheses mean negative, following the
// financial-statement convention, so "(1,234.50)" is -1234.50. Commas and
// dollar signs are ignored.
func ParseCurrency(s string) (decimal.Decimal, error) {
	cleaned := symbolStripper.Replace(strings.TrimSpace(s))
	if cleaned == "" || cleaned == "-" {
		return decimal.Zero, nil
	}

	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = strings.TrimSuffix(strings.TrimPrefix(cleaned, "("), ")")
		if cleaned == "" || cleaned == "-" {
			return decimal.Zero, nil
		}
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid currency amount '%s': %w", s, err)
	}
	if negative {
		amount = amount.Neg()
	}
	return amount.Round(2), nil
}

// FormatAccounting renders an amount with two decimals, thousands separators
// and parentheses for negatives, e.g. "(1,234.50)".
func FormatAccounting(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + "." + frac
	if amount.Round(2).IsNegative() {
		return "(" + out + ")"
	}
	return out
}
