// Package money holds the arithmetic shared by the entry workflow and the
// server-side total recomputation. Amounts are plain float64 rounded to two
// decimals, matching the numeric(12,2) storage columns.
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ItemTotal derives a line item's total from quantity and unit price.
func ItemTotal(quantity int, unitPrice float64) float64 {
	return Round2(float64(quantity) * unitPrice)
}

// ParseAmount coerces user-typed text into an amount. During entry a unit
// price may legitimately be a partial decimal ("12." while typing); anything
// unparseable, including the empty string, coerces to 0.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// Sum adds amounts and rounds the result to two decimals.
func Sum(amounts ...float64) float64 {
	var total float64
	for _, a := range amounts {
		total += a
	}
	return Round2(total)
}

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"ZAR": "R",
	"GBP": "£",
}

// Format renders an amount for display, e.g. Format(25.5, "USD") == "$25.50".
// Unknown currencies fall back to a code prefix.
func Format(v float64, currency string) string {
	if sym, ok := currencySymbols[currency]; ok {
		if v < 0 {
			return fmt.Sprintf("-%s%.2f", sym, -v)
		}
		return fmt.Sprintf("%s%.2f", sym, v)
	}
	return fmt.Sprintf("%s %.2f", currency, v)
}
