package calculator

import (
	"math"
	"testing"
)

const eps = 1e-9

func ramp(from, to float64) []float64 {
	var out []float64
	for v := from; v <= to; v++ {
		out = append(out, v)
	}
	return out
}

func TestMovingAverage_ShrinkingWindow(t *testing.T) {
	prices := []float64{2, 4, 6, 8, 10, 12}
	got, err := MovingAverage(prices, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{2, 3, 4, 6, 8, 10}
	if len(got) != len(prices) {
		t.Fatalf("expected %d points, got %d", len(prices), len(got))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > eps {
			t.Errorf("index %d: expected %.4f, got %.4f", i, want[i], got[i])
		}
	}
}

func TestMovingAverage_LeadingPointsArePrefixMeans(t *testing.T) {
	prices := []float64{101.5, 99.2, 100.7, 103.1, 98.4, 97.9, 102.2}
	w := 50
	got, err := MovingAverage(prices, w)
	if err != nil {
		t.Fatal(err)
	}
	sum := 0.0
	for i, p := range prices {
		sum += p
		if want := sum / float64(i+1); math.Abs(got[i]-want) > eps {
			t.Errorf("index %d: expected prefix mean %.6f, got %.6f", i, want, got[i])
		}
	}
}

func TestMovingAverage_Edges(t *testing.T) {
	got, err := MovingAverage(nil, 5)
	if err != nil || len(got) != 0 {
		t.Errorf("expected empty output for empty input, got %v (%v)", got, err)
	}
	if _, err := MovingAverage([]float64{1}, 0); err == nil {
		t.Error("expected error for zero window")
	}
}

func TestRSI_StrictlyIncreasing(t *testing.T) {
	prices := ramp(10, 100)
	rsi, err := RSI(prices, DefaultRSIPeriod)
	if err != nil {
		t.Fatal(err)
	}
	if len(rsi) != len(prices) {
		t.Fatalf("expected %d points, got %d", len(prices), len(rsi))
	}
	for i := 1; i < len(rsi); i++ {
		if rsi[i] != 100 {
			t.Errorf("index %d: expected RSI 100, got %v", i, rsi[i])
		}
	}
}

func TestRSI_StrictlyDecreasing(t *testing.T) {
	var prices []float64
	for v := 200.0; v > 150; v -= 1.5 {
		prices = append(prices, v)
	}
	rsi, err := RSI(prices, DefaultRSIPeriod)
	if err != nil {
		t.Fatal(err)
	}
	for i := DefaultRSIPeriod; i < len(rsi); i++ {
		if rsi[i] != 0 {
			t.Errorf("index %d: expected RSI 0, got %v", i, rsi[i])
		}
	}
}

func TestRSI_ConstantIsNaN(t *testing.T) {
	prices := []float64{50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50}
	rsi, err := RSI(prices, DefaultRSIPeriod)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range rsi {
		if !math.IsNaN(v) {
			t.Errorf("index %d: expected NaN, got %v", i, v)
		}
	}
}

func TestRSI_SinglePointAndEmpty(t *testing.T) {
	rsi, err := RSI([]float64{42}, DefaultRSIPeriod)
	if err != nil {
		t.Fatal(err)
	}
	if len(rsi) != 1 || !math.IsNaN(rsi[0]) {
		t.Errorf("expected [NaN], got %v", rsi)
	}
	rsi, err = RSI(nil, DefaultRSIPeriod)
	if err != nil || len(rsi) != 0 {
		t.Errorf("expected empty output, got %v (%v)", rsi, err)
	}
	if _, err := RSI([]float64{1, 2}, 0); err == nil {
		t.Error("expected error for zero period")
	}
}

func TestRSI_RollingMeanValue(t *testing.T) {
	// changes: +2, -1, +3, -2 with period 2
	prices := []float64{10, 12, 11, 14, 12}
	rsi, err := RSI(prices, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{
		math.NaN(),
		100,                   // only +2
		100 - 100/(1+2.0/1.0), // gains 2, losses 1
		100 - 100/(1+3.0/1.0), // gains 3, losses 1
		100 - 100/(1+3.0/2.0), // gains 3, losses 2
	}
	if !math.IsNaN(rsi[0]) {
		t.Errorf("index 0: expected NaN, got %v", rsi[0])
	}
	for i := 1; i < len(want); i++ {
		if math.Abs(rsi[i]-want[i]) > eps {
			t.Errorf("index %d: expected %.6f, got %.6f", i, want[i], rsi[i])
		}
	}
}

func TestRSI_PartialWindowIsDefined(t *testing.T) {
	prices := []float64{10, 11, 10.5, 11.5}
	rsi, err := RSI(prices, DefaultRSIPeriod)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(rsi); i++ {
		if math.IsNaN(rsi[i]) {
			t.Errorf("index %d: expected a defined value before a full window, got NaN", i)
		}
	}
}

func TestSupportResistance(t *testing.T) {
	prices := []float64{12.5, 9.75, 14.25, 11, 13}
	s, r := SupportResistance(prices)
	if s != 9.75 || r != 14.25 {
		t.Errorf("expected 9.75/14.25, got %v/%v", s, r)
	}
	for _, p := range prices {
		if p < s || p > r {
			t.Errorf("price %v outside [%v, %v]", p, s, r)
		}
	}

	s, r = SupportResistance(nil)
	if !math.IsNaN(s) || !math.IsNaN(r) {
		t.Errorf("expected NaN for empty series, got %v/%v", s, r)
	}
}

func TestRangePosition(t *testing.T) {
	tests := []struct {
		current, low, high, want float64
	}{
		{15, 10, 20, 0.5},
		{10, 10, 20, 0},
		{20, 10, 20, 1},
		{25, 10, 20, 1},
		{7, 7, 7, 0.5},
	}
	for _, tt := range tests {
		if got := RangePosition(tt.current, tt.low, tt.high); math.Abs(got-tt.want) > eps {
			t.Errorf("RangePosition(%v, %v, %v): expected %v, got %v", tt.current, tt.low, tt.high, tt.want, got)
		}
	}
	if !math.IsNaN(RangePosition(math.NaN(), 1, 2)) {
		t.Error("expected NaN for undefined current price")
	}
}

func TestLast(t *testing.T) {
	if !math.IsNaN(Last(nil)) {
		t.Error("expected NaN for empty slice")
	}
	if Last([]float64{1, 2, 3}) != 3 {
		t.Error("expected last element")
	}
}
