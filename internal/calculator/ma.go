package calculator

import "errors"

var errNonPositivePeriod = errors.New("period must be positive")

// MovingAverage computes a rolling mean of prices over the given window.
// Point i averages the last min(window, i+1) prices, so the leading points
// use a shrinking window instead of being undefined.
func MovingAverage(prices []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, errNonPositivePeriod
	}
	out := make([]float64, len(prices))
	sum := 0.0
	for i, p := range prices {
		sum += p
		n := i + 1
		if i >= window {
			sum -= prices[i-window]
			n = window
		}
		out[i] = sum / float64(n)
	}
	return out, nil
}

// Last returns the final value of a series, or NaN when it is empty.
func Last(values []float64) float64 {
	if len(values) == 0 {
		return nan()
	}
	return values[len(values)-1]
}
