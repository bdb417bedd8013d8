package calculator

import "math"

// DefaultRSIPeriod is the conventional RSI lookback.
const DefaultRSIPeriod = 14

// RSI computes the relative strength index for every point of prices.
//
// Average gain and loss are plain rolling means over the last period price
// changes, not Wilder smoothing. Windows shorter than period (the start of
// the series) average whatever changes exist; the first point has none and
// is NaN. A zero average loss yields RS=+Inf and RSI=100; zero gain and zero
// loss yield NaN.
func RSI(prices []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errNonPositivePeriod
	}
	out := make([]float64, len(prices))
	for i := range prices {
		start := i - period + 1
		if start < 1 {
			start = 1
		}
		var gain, loss float64
		n := 0
		for j := start; j <= i; j++ {
			change := prices[j] - prices[j-1]
			if change > 0 {
				gain += change
			} else {
				loss -= change
			}
			n++
		}
		if n == 0 {
			out[i] = nan()
			continue
		}
		avgGain := gain / float64(n)
		avgLoss := loss / float64(n)
		rs := avgGain / avgLoss
		out[i] = 100.0 - 100.0/(1.0+rs)
	}
	return out, nil
}

func nan() float64 { return math.NaN() }
