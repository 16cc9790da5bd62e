package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    string
		expectError bool
	}{
		{name: "empty string", input: "", expected: "0.00"},
		{name: "whitespace only", input: "   ", expected: "0.00"},
		{name: "dash", input: "-", expected: "0.00"},
		{name: "padded dash", input: " - ", expected: "0.00"},
		{name: "plain integer", input: "1000", expected: "1000.00"},
		{name: "plain decimal", input: "12.5", expected: "12.50"},
		{name: "negative sign", input: "-50", expected: "-50.00"},
		{name: "thousands separators", input: "1,234,567.89", expected: "1234567.89"},
		{name: "dollar sign", input: "$1,150.00", expected: "1150.00"},
		{name: "parentheses", input: "(1,234.50)", expected: "-1234.50"},
		{name: "dollar inside parentheses", input: "($900.00)", expected: "-900.00"},
		{name: "dollar outside parentheses", input: "$(12.00)", expected: "-12.00"},
		{name: "dash in parentheses", input: "(-)", expected: "0.00"},
		{name: "rounds to cents", input: "10.005", expected: "10.01"},
		{name: "negative rounds away from zero", input: "-10.005", expected: "-10.01"},
		{name: "garbage", input: "12abc", expectError: true},
		{name: "unbalanced parenthesis", input: "(12.00", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCurrency(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.StringFixed(2))
		})
	}
}

func TestFormatAccounting(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "0", expected: "0.00"},
		{input: "12.5", expected: "12.50"},
		{input: "999.99", expected: "999.99"},
		{input: "1000", expected: "1,000.00"},
		{input: "1234567.891", expected: "1,234,567.89"},
		{input: "-1150", expected: "(1,150.00)"},
		{input: "-0.001", expected: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatAccounting(decimal.RequireFromString(tt.input)))
		})
	}
}
