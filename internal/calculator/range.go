package calculator

import "math"

// SupportResistance returns the lowest and highest price of the series.
// Both are NaN for an empty series.
func SupportResistance(prices []float64) (support, resistance float64) {
	if len(prices) == 0 {
		return nan(), nan()
	}
	support = math.Inf(1)
	resistance = math.Inf(-1)
	for _, p := range prices {
		if p < support {
			support = p
		}
		if p > resistance {
			resistance = p
		}
	}
	return support, resistance
}

// RangePosition returns where current sits within [low, high] (0.0~1.0).
func RangePosition(current, low, high float64) float64 {
	if math.IsNaN(current) || math.IsNaN(low) || math.IsNaN(high) {
		return nan()
	}
	if high == low {
		return 0.5
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos
}
