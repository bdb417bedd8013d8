package render

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"DataRizzer/internal/model"
)

func points(values ...float64) []model.ChartPoint {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]model.ChartPoint, len(values))
	for i, v := range values {
		out[i] = model.ChartPoint{Time: start.AddDate(0, 0, i), Value: v}
	}
	return out
}

func TestPath_ScalesIntoBox(t *testing.T) {
	got := Path(points(0, 5, 10), 0, 0, 100, 50, 0, 10)
	want := "M0.00,50.00 L50.00,25.00 L100.00,0.00"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPath_NaNBreaksSegments(t *testing.T) {
	got := Path(points(math.NaN(), 1, math.NaN(), 2, 3), 0, 0, 40, 10, 1, 3)
	want := "M10.00,10.00 M30.00,5.00 L40.00,0.00"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPath_FlatAndEmpty(t *testing.T) {
	if got := Path(nil, 0, 0, 10, 10, 0, 1); got != "" {
		t.Errorf("expected empty path, got %q", got)
	}
	got := Path(points(7, 7), 0, 0, 10, 10, 7, 7)
	want := "M0.00,5.00 L10.00,5.00"
	if got != want {
		t.Errorf("expected flat line in the middle, got %q", got)
	}
}

func TestBounds(t *testing.T) {
	lines := []model.Line{
		{Points: points(3, math.NaN(), 9)},
		{Points: points(5, 1)},
	}
	lo, hi, ok := Bounds(lines)
	if !ok || lo != 1 || hi != 9 {
		t.Errorf("expected 1..9, got %v..%v (%v)", lo, hi, ok)
	}
	if _, _, ok := Bounds([]model.Line{{Points: points(math.NaN())}}); ok {
		t.Error("expected no bounds for all-NaN lines")
	}
}

func TestNewChartView_FixedRangeAndGuides(t *testing.T) {
	c := model.Chart{Title: "RSI", Lines: []model.Line{{Name: "RSI", Color: "#4169E1", Points: points(20, 80)}}}
	r := [2]float64{0, 100}
	v := NewChartView(c, 200, 150, &r, 30, 70)
	if v.Empty {
		t.Fatal("expected a drawable chart")
	}
	if v.YMin != "0" || v.YMax != "100" {
		t.Errorf("expected fixed 0..100 labels, got %s..%s", v.YMin, v.YMax)
	}
	if len(v.Guides) != 2 || v.Guides[0].Label != "30" {
		t.Fatalf("unexpected guides %+v", v.Guides)
	}
	if !(v.Guides[0].Y > v.Guides[1].Y) {
		t.Error("the 30 guide must sit below the 70 guide")
	}
	if v.XStart != "2024-01-01" || v.XEnd != "2024-01-02" {
		t.Errorf("unexpected x labels %s..%s", v.XStart, v.XEnd)
	}
}

func TestPage_RendersReport(t *testing.T) {
	q := model.Query{Ticker: "AAPL", Overlays: []model.Overlay{model.OverlayShortMA}, LookbackYears: 3}
	pts := []model.PricePoint{
		{Time: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), AdjClose: 180},
		{Time: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), AdjClose: 185.5},
	}
	a := &model.Analysis{
		Symbol: "AAPL",
		Points: pts,
		Indicators: model.IndicatorSet{
			ShortMA: []float64{180, 182.75},
			LongMA:  []float64{180, 182.75},
			RSI:     []float64{math.NaN(), 100},
		},
		Summary: model.Summary{
			Support: 180, Resistance: 185.5, LatestClose: 185.5, LatestShortMA: 182.75, LatestRSI: 100, Points: 2,
		},
		Recommendation: model.Recommendation{Verdict: model.VerdictSell, Reason: "The RSI is above 70, indicating the stock may be overbought."},
	}
	r := &model.Report{
		Query:      q,
		Analysis:   a,
		PriceChart: model.Chart{Title: "AAPL Stock Data", Lines: []model.Line{{Name: "Close Price", Color: "#333", Points: []model.ChartPoint{{Time: pts[0].Time, Value: 180}, {Time: pts[1].Time, Value: 185.5}}}}},
		RSIChart:   model.Chart{Title: "RSI", Lines: []model.Line{{Name: "RSI", Color: "#4169E1", Points: []model.ChartPoint{{Time: pts[0].Time, Value: math.NaN()}, {Time: pts[1].Time, Value: 100}}}}},
	}

	var buf bytes.Buffer
	if err := Page(&buf, NewPageView([]string{"SPY", "AAPL"}, q, r, "")); err != nil {
		t.Fatal(err)
	}
	html := buf.String()
	for _, want := range []string{
		"AAPL Stock Data",
		`<option value="AAPL" selected>`,
		`value="short" checked`,
		`<option value="3" selected>3 Years</option>`,
		"$180.00",
		"$185.50",
		"$182.75",
		"100.00",
		"Sell",
		"The RSI is above 70, indicating the stock may be overbought.",
		"<path",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
	if strings.Contains(html, `value="long" checked`) {
		t.Error("long overlay should not be checked")
	}
}

func TestPage_RendersError(t *testing.T) {
	var buf bytes.Buffer
	v := NewPageView([]string{"SPY"}, model.Query{Ticker: "SPY", LookbackYears: 1}, nil, "market data unavailable")
	if err := Page(&buf, v); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "market data unavailable") {
		t.Error("expected error message on page")
	}
	if strings.Contains(buf.String(), "Current Information") {
		t.Error("no info panel expected without a report")
	}
}
