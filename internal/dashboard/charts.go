package dashboard

import "DataRizzer/internal/model"

// Line colors of the dashboard charts.
const (
	ColorClose   = "#333"
	ColorShortMA = "#006400"
	ColorLongMA  = "#FF8C00"
	ColorRSI     = "#4169E1"
)

// PriceChart builds the close-price chart with the enabled overlays.
func PriceChart(q model.Query, a *model.Analysis) model.Chart {
	c := model.Chart{
		Title:      q.Ticker + " Stock Data",
		XAxisTitle: "Date",
		YAxisTitle: "Price",
	}
	closes := make([]float64, len(a.Points))
	for i, p := range a.Points {
		closes[i] = p.AdjClose
	}
	c.Lines = append(c.Lines, line("Close Price", ColorClose, a.Points, closes))
	if q.Has(model.OverlayShortMA) {
		c.Lines = append(c.Lines, line("Short MAVG", ColorShortMA, a.Points, a.Indicators.ShortMA))
	}
	if q.Has(model.OverlayLongMA) {
		c.Lines = append(c.Lines, line("Long MAVG", ColorLongMA, a.Points, a.Indicators.LongMA))
	}
	return c
}

// RSIChart builds the oscillator chart.
func RSIChart(a *model.Analysis) model.Chart {
	return model.Chart{
		Title:      "RSI",
		XAxisTitle: "Date",
		YAxisTitle: "RSI",
		Lines:      []model.Line{line("RSI", ColorRSI, a.Points, a.Indicators.RSI)},
	}
}

func line(name, color string, points []model.PricePoint, values []float64) model.Line {
	l := model.Line{Name: name, Color: color, Points: make([]model.ChartPoint, len(points))}
	for i, p := range points {
		l.Points[i] = model.ChartPoint{Time: p.Time, Value: values[i]}
	}
	return l
}
