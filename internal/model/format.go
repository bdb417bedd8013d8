package model

import "github.com/shopspring/decimal"

// FormatPrice renders a price as "$123.45", or "n/a" when undefined.
func FormatPrice(v float64) string {
	if !Defined(v) {
		return "n/a"
	}
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}

// FormatRSI renders an oscillator value with two decimals, or "n/a".
func FormatRSI(v float64) string {
	if !Defined(v) {
		return "n/a"
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// FormatPercent renders a 0..1 ratio as a whole percentage, or "n/a".
func FormatPercent(v float64) string {
	if !Defined(v) {
		return "n/a"
	}
	return decimal.NewFromFloat(v * 100).StringFixed(0) + "%"
}
