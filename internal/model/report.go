package model

import "time"

// ChartPoint is one (x, y) sample of a line chart. Value may be NaN.
type ChartPoint struct {
	Time  time.Time
	Value float64
}

// Line is a named, colored series within a chart.
type Line struct {
	Name   string
	Color  string
	Points []ChartPoint
}

// Chart is a line-chart payload for the presentation layer.
type Chart struct {
	Title      string
	XAxisTitle string
	YAxisTitle string
	Lines      []Line
}

// Report is everything a single dashboard interaction produces.
type Report struct {
	Query       Query
	From        time.Time
	To          time.Time
	PriceChart  Chart
	RSIChart    Chart
	Analysis    *Analysis
	Source      string
	GeneratedAt time.Time
}
