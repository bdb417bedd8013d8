package strategy

import "DataRizzer/internal/model"

// RSI thresholds. Comparisons against them are strict.
const (
	OversoldRSI   = 30.0
	OverboughtRSI = 70.0
)

const (
	reasonBuy  = "The RSI is below 30, indicating the stock may be oversold."
	reasonSell = "The RSI is above 70, indicating the stock may be overbought."
	reasonHold = "The RSI is within the neutral range (30-70)."
)

// Recommend maps the latest RSI to a verdict.
// NaN fails both comparisons and lands in Hold.
func Recommend(latestRSI float64) model.Recommendation {
	switch {
	case latestRSI < OversoldRSI:
		return model.Recommendation{Verdict: model.VerdictBuy, Reason: reasonBuy}
	case latestRSI > OverboughtRSI:
		return model.Recommendation{Verdict: model.VerdictSell, Reason: reasonSell}
	default:
		return model.Recommendation{Verdict: model.VerdictHold, Reason: reasonHold}
	}
}
