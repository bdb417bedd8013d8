package model

import "time"

// IndicatorSet holds derived series index-aligned with a PriceSeries.
// Undefined values are NaN.
type IndicatorSet struct {
	ShortMA []float64
	LongMA  []float64
	RSI     []float64
}

// Summary is the scalar snapshot taken from the final point of a series.
type Summary struct {
	Support       float64
	Resistance    float64
	RangePosition float64 // 0.0 ~ 1.0
	LatestClose   float64
	LatestShortMA float64
	LatestLongMA  float64
	LatestRSI     float64
	LatestTime    time.Time
	Points        int
	// InsufficientData is set when the series has fewer than two points,
	// so no price change and no RSI can be derived.
	InsufficientData bool
}

// Analysis is the full output of one engine pass.
type Analysis struct {
	Symbol         string
	Points         []PricePoint
	Indicators     IndicatorSet
	Summary        Summary
	Recommendation Recommendation
}
