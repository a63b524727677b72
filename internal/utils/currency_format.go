package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL formats an amount as Brazilian currency: grouped thousands with
// '.' and a ',' decimal separator, always two decimal places.
// Example: 1234567.5 -> "R$ 1.234.567,50"
func FormatBRL(amount decimal.Decimal) string {
	return "R$ " + FormatAmountBR(amount)
}

// FormatAmountBR formats an amount in pt-BR convention without the currency
// symbol. Example: -1234.5 -> "-1.234,50"
func FormatAmountBR(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(digit)
	}

	result := grouped.String() + "," + fracPart
	if negative {
		return "-" + result
	}
	return result
}
