package server

import (
	"time"

	"DataRizzer/internal/model"
)

// JSON has no NaN, so undefined values travel as null.

type pointDTO struct {
	Time  time.Time `json:"t"`
	Value *float64  `json:"v"`
}

type lineDTO struct {
	Name   string     `json:"name"`
	Color  string     `json:"color"`
	Points []pointDTO `json:"points"`
}

type chartDTO struct {
	Title      string    `json:"title"`
	XAxisTitle string    `json:"x_axis_title"`
	YAxisTitle string    `json:"y_axis_title"`
	Lines      []lineDTO `json:"lines"`
}

type summaryDTO struct {
	Support          *float64  `json:"support"`
	Resistance       *float64  `json:"resistance"`
	RangePosition    *float64  `json:"range_position"`
	LatestClose      *float64  `json:"latest_close"`
	LatestShortMA    *float64  `json:"latest_short_ma"`
	LatestLongMA     *float64  `json:"latest_long_ma"`
	LatestRSI        *float64  `json:"latest_rsi"`
	LatestTime       time.Time `json:"latest_time"`
	Points           int       `json:"points"`
	InsufficientData bool      `json:"insufficient_data"`
}

type recommendationDTO struct {
	Verdict string `json:"verdict"`
	Reason  string `json:"reason"`
}

// ReportDTO is the JSON form of a model.Report.
type ReportDTO struct {
	Ticker         string            `json:"ticker"`
	Overlays       []string          `json:"overlays"`
	LookbackYears  int               `json:"lookback_years"`
	From           time.Time         `json:"from"`
	To             time.Time         `json:"to"`
	Source         string            `json:"source"`
	GeneratedAt    time.Time         `json:"generated_at"`
	Summary        summaryDTO        `json:"summary"`
	Recommendation recommendationDTO `json:"recommendation"`
	PriceChart     chartDTO          `json:"price_chart"`
	RSIChart       chartDTO          `json:"rsi_chart"`
}

func num(v float64) *float64 {
	if !model.Defined(v) {
		return nil
	}
	return &v
}

func newChartDTO(c model.Chart) chartDTO {
	out := chartDTO{
		Title:      c.Title,
		XAxisTitle: c.XAxisTitle,
		YAxisTitle: c.YAxisTitle,
		Lines:      make([]lineDTO, 0, len(c.Lines)),
	}
	for _, l := range c.Lines {
		pts := make([]pointDTO, len(l.Points))
		for i, p := range l.Points {
			pts[i] = pointDTO{Time: p.Time, Value: num(p.Value)}
		}
		out.Lines = append(out.Lines, lineDTO{Name: l.Name, Color: l.Color, Points: pts})
	}
	return out
}

// NewReportDTO converts r for JSON output.
func NewReportDTO(r *model.Report) ReportDTO {
	overlays := make([]string, len(r.Query.Overlays))
	for i, o := range r.Query.Overlays {
		overlays[i] = string(o)
	}
	dto := ReportDTO{
		Ticker:        r.Query.Ticker,
		Overlays:      overlays,
		LookbackYears: r.Query.LookbackYears,
		From:          r.From,
		To:            r.To,
		Source:        r.Source,
		GeneratedAt:   r.GeneratedAt,
		PriceChart:    newChartDTO(r.PriceChart),
		RSIChart:      newChartDTO(r.RSIChart),
	}
	if a := r.Analysis; a != nil {
		s := a.Summary
		dto.Summary = summaryDTO{
			Support:          num(s.Support),
			Resistance:       num(s.Resistance),
			RangePosition:    num(s.RangePosition),
			LatestClose:      num(s.LatestClose),
			LatestShortMA:    num(s.LatestShortMA),
			LatestLongMA:     num(s.LatestLongMA),
			LatestRSI:        num(s.LatestRSI),
			LatestTime:       s.LatestTime,
			Points:           s.Points,
			InsufficientData: s.InsufficientData,
		}
		dto.Recommendation = recommendationDTO{
			Verdict: string(a.Recommendation.Verdict),
			Reason:  a.Recommendation.Reason,
		}
	}
	return dto
}
