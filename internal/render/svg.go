package render

import (
	"fmt"
	"math"
	"strings"

	"DataRizzer/internal/model"
)

// Plot box of the inline SVG charts, in user units.
const (
	plotLeft   = 60.0
	plotTop    = 20.0
	plotRight  = 20.0
	plotBottom = 30.0
)

// ChartView is a chart scaled for SVG output.
type ChartView struct {
	Title  string
	XAxis  string
	YAxis  string
	Width  int
	Height int
	Lines  []LineView
	Guides []GuideView
	YMin   string
	YMax   string
	XStart string
	XEnd   string
	Empty  bool

	// plot box corners, used by the template for axes
	X0, Y0, X1, Y1 float64
}

// LineView is one series as SVG path data.
type LineView struct {
	Name  string
	Color string
	D     string
}

// GuideView is a horizontal reference line such as an RSI threshold.
type GuideView struct {
	Label string
	Y     float64
}

// Bounds returns the min and max defined values across the lines.
// ok is false when no value is defined.
func Bounds(lines []model.Line) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, l := range lines {
		for _, p := range l.Points {
			if !model.Defined(p.Value) {
				continue
			}
			lo = math.Min(lo, p.Value)
			hi = math.Max(hi, p.Value)
			ok = true
		}
	}
	return lo, hi, ok
}

// Path turns points into SVG path data inside the box (x0,y0)-(x1,y1).
// Points are spaced evenly by index; undefined values break the path.
func Path(points []model.ChartPoint, x0, y0, x1, y1, lo, hi float64) string {
	if len(points) == 0 {
		return ""
	}
	span := hi - lo
	if span == 0 {
		span = 1
		lo -= 0.5
	}
	step := 0.0
	if len(points) > 1 {
		step = (x1 - x0) / float64(len(points)-1)
	}

	var b strings.Builder
	pen := false
	for i, p := range points {
		if !model.Defined(p.Value) {
			pen = false
			continue
		}
		x := x0 + step*float64(i)
		y := y1 - (p.Value-lo)/span*(y1-y0)
		cmd := "L"
		if !pen {
			cmd = "M"
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s%.2f,%.2f", cmd, x, y)
		pen = true
	}
	return b.String()
}

// NewChartView scales c to a width x height SVG. A non-nil fixed pins the
// y range (used for the 0-100 oscillator).
func NewChartView(c model.Chart, width, height int, fixed *[2]float64, guides ...float64) ChartView {
	v := ChartView{
		Title:  c.Title,
		XAxis:  c.XAxisTitle,
		YAxis:  c.YAxisTitle,
		Width:  width,
		Height: height,
		X0:     plotLeft,
		Y0:     plotTop,
		X1:     float64(width) - plotRight,
		Y1:     float64(height) - plotBottom,
	}

	lo, hi, ok := Bounds(c.Lines)
	if fixed != nil {
		lo, hi, ok = fixed[0], fixed[1], ok || len(c.Lines) > 0
	}
	if !ok {
		v.Empty = true
		return v
	}
	v.YMin = trimFloat(lo)
	v.YMax = trimFloat(hi)

	for _, l := range c.Lines {
		v.Lines = append(v.Lines, LineView{
			Name:  l.Name,
			Color: l.Color,
			D:     Path(l.Points, v.X0, v.Y0, v.X1, v.Y1, lo, hi),
		})
		if len(l.Points) > 0 && v.XStart == "" {
			v.XStart = l.Points[0].Time.Format("2006-01-02")
			v.XEnd = l.Points[len(l.Points)-1].Time.Format("2006-01-02")
		}
	}
	if hi > lo {
		for _, g := range guides {
			v.Guides = append(v.Guides, GuideView{
				Label: trimFloat(g),
				Y:     v.Y1 - (g-lo)/(hi-lo)*(v.Y1-v.Y0),
			})
		}
	}
	return v
}

func trimFloat(f float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
}
