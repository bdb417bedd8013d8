package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"DataRizzer/internal/model"
	"DataRizzer/internal/strategy"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTmpl = template.Must(template.New("page.html").ParseFS(templateFS, "templates/page.html"))

const (
	priceChartWidth  = 960
	priceChartHeight = 420
	rsiChartHeight   = 200
)

// InfoRow is one line of the "Current Information" table.
type InfoRow struct {
	Label string
	Value string
}

// PageView is the data behind the dashboard page.
type PageView struct {
	Tickers       []string
	Years         []int
	Ticker        string
	LookbackYears int
	ShortChecked  bool
	LongChecked   bool
	Error         string

	HasReport      bool
	PriceChart     ChartView
	RSIChart       ChartView
	Info           []InfoRow
	Recommendation string
	Reason         string
	Warning        string
}

// NewPageView builds the page for a query and its report. r may be nil
// when the query failed; errMsg is then shown instead of the charts.
func NewPageView(tickers []string, q model.Query, r *model.Report, errMsg string) PageView {
	v := PageView{
		Tickers:       tickers,
		Ticker:        q.Ticker,
		LookbackYears: q.LookbackYears,
		ShortChecked:  q.Has(model.OverlayShortMA),
		LongChecked:   q.Has(model.OverlayLongMA),
		Error:         errMsg,
	}
	for y := model.MinLookbackYears; y <= model.MaxLookbackYears; y++ {
		v.Years = append(v.Years, y)
	}
	if r == nil || r.Analysis == nil {
		return v
	}

	s := r.Analysis.Summary
	rsiRange := [2]float64{0, 100}
	v.HasReport = true
	v.PriceChart = NewChartView(r.PriceChart, priceChartWidth, priceChartHeight, nil)
	v.RSIChart = NewChartView(r.RSIChart, priceChartWidth, rsiChartHeight, &rsiRange,
		strategy.OversoldRSI, strategy.OverboughtRSI)
	v.Info = []InfoRow{
		{"Support Level", model.FormatPrice(s.Support)},
		{"Resistance Level", model.FormatPrice(s.Resistance)},
		{"Latest Close Price", model.FormatPrice(s.LatestClose)},
		{"Latest Short MAVG", model.FormatPrice(s.LatestShortMA)},
		{"Latest RSI", model.FormatRSI(s.LatestRSI)},
	}
	v.Recommendation = string(r.Analysis.Recommendation.Verdict)
	v.Reason = r.Analysis.Recommendation.Reason
	if s.InsufficientData {
		v.Warning = fmt.Sprintf("Only %d price point(s) available for %s; indicators are undefined.", s.Points, q.Ticker)
	}
	return v
}

// Page writes the dashboard HTML.
func Page(w io.Writer, v PageView) error {
	if err := pageTmpl.Execute(w, v); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
