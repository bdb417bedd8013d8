package model

import (
	"errors"
	"fmt"
	"strings"
)

// Overlay is an optional derived series drawn atop the price chart.
type Overlay string

const (
	OverlayShortMA Overlay = "Short_MAVG"
	OverlayLongMA  Overlay = "Long_MAVG"
)

// DefaultOverlays are enabled when the caller does not choose any.
var DefaultOverlays = []Overlay{OverlayShortMA, OverlayLongMA}

const (
	MinLookbackYears = 1
	MaxLookbackYears = 5
	maxTickerLen     = 16
)

// ErrInvalidQuery is wrapped by every Query validation failure.
var ErrInvalidQuery = errors.New("invalid query")

// Query is one dashboard interaction: ticker, overlays and lookback window.
type Query struct {
	Ticker        string
	Overlays      []Overlay
	LookbackYears int
}

// Has reports whether the overlay is enabled.
func (q Query) Has(o Overlay) bool {
	for _, v := range q.Overlays {
		if v == o {
			return true
		}
	}
	return false
}

// Validate checks ticker syntax and the lookback bounds.
func (q Query) Validate() error {
	if q.Ticker == "" {
		return fmt.Errorf("%w: ticker is required", ErrInvalidQuery)
	}
	if len(q.Ticker) > maxTickerLen {
		return fmt.Errorf("%w: ticker %q is longer than %d characters", ErrInvalidQuery, q.Ticker, maxTickerLen)
	}
	for _, r := range q.Ticker {
		if !validTickerRune(r) {
			return fmt.Errorf("%w: ticker %q contains %q", ErrInvalidQuery, q.Ticker, r)
		}
	}
	if q.LookbackYears < MinLookbackYears || q.LookbackYears > MaxLookbackYears {
		return fmt.Errorf("%w: lookback must be between %d and %d years, got %d",
			ErrInvalidQuery, MinLookbackYears, MaxLookbackYears, q.LookbackYears)
	}
	return nil
}

func validTickerRune(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '^', r == '=', r == '-':
		return true
	}
	return false
}

// NormalizeTicker trims and upper-cases a user supplied symbol.
func NormalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ParseOverlays parses a comma-separated overlay list.
// "none" selects no overlay; an empty string selects DefaultOverlays.
func ParseOverlays(s string) ([]Overlay, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return append([]Overlay(nil), DefaultOverlays...), nil
	}
	if strings.EqualFold(s, "none") {
		return []Overlay{}, nil
	}
	var out []Overlay
	seen := make(map[Overlay]bool)
	for _, part := range strings.Split(s, ",") {
		var o Overlay
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "short", "short_mavg", "short_ma":
			o = OverlayShortMA
		case "long", "long_mavg", "long_ma":
			o = OverlayLongMA
		case "":
			continue
		default:
			return nil, fmt.Errorf("%w: unknown overlay %q", ErrInvalidQuery, part)
		}
		if !seen[o] {
			seen[o] = true
			out = append(out, o)
		}
	}
	if out == nil {
		out = []Overlay{}
	}
	return out, nil
}
