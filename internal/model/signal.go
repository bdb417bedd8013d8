package model

// Verdict is the three-way recommendation.
type Verdict string

const (
	VerdictBuy  Verdict = "Buy"
	VerdictHold Verdict = "Hold"
	VerdictSell Verdict = "Sell"
)

// Recommendation pairs a verdict with its fixed human-readable reason.
type Recommendation struct {
	Verdict Verdict
	Reason  string
}
