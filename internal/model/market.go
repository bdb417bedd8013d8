package model

import (
	"math"
	"time"
)

// PricePoint is a single trading day's adjusted close.
type PricePoint struct {
	Time     time.Time
	AdjClose float64
}

// PriceSeries holds raw price data for analysis.
// Points are sorted ascending with no duplicate timestamps.
type PriceSeries struct {
	Symbol    string
	Points    []PricePoint
	FetchedAt time.Time
}

// Len returns the number of points in the series.
func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Points)
}

// Closes extracts the adjusted closes in series order.
func (s *PriceSeries) Closes() []float64 {
	if s == nil {
		return nil
	}
	closes := make([]float64, len(s.Points))
	for i, p := range s.Points {
		closes[i] = p.AdjClose
	}
	return closes
}

// Last returns the final point, or false for an empty series.
func (s *PriceSeries) Last() (PricePoint, bool) {
	if s.Len() == 0 {
		return PricePoint{}, false
	}
	return s.Points[len(s.Points)-1], true
}

// LookbackRange returns [now - years*365 days, now]. Leap days are ignored.
func LookbackRange(now time.Time, years int) (from, to time.Time) {
	return now.Add(-time.Duration(years*365) * 24 * time.Hour), now
}

// Defined reports whether v is a usable number (not NaN or ±Inf).
func Defined(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
