package models

import "github.com/shopspring/decimal"

// CurrencyPlaces is the fixed-point precision of every amount in a roll-forward.
const CurrencyPlaces int32 = 2

// Round2 rounds an amount to whole cents.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyPlaces)
}

// EqualCents reports whether two amounts are equal once rounded to cents.
func EqualCents(a, b decimal.Decimal) bool {
	return Round2(a).Equal(Round2(b))
}

// Sum adds amounts without intermediate rounding.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
