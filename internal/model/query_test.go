package model

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestParseOverlays(t *testing.T) {
	tests := []struct {
		in   string
		want []Overlay
	}{
		{"", []Overlay{OverlayShortMA, OverlayLongMA}},
		{"none", []Overlay{}},
		{"short", []Overlay{OverlayShortMA}},
		{"Long_MAVG", []Overlay{OverlayLongMA}},
		{"long, short,long", []Overlay{OverlayLongMA, OverlayShortMA}},
	}
	for _, tt := range tests {
		got, err := ParseOverlays(tt.in)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.in, err)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("%q: expected %v, got %v", tt.in, tt.want, got)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%q: expected %v, got %v", tt.in, tt.want, got)
			}
		}
	}

	if _, err := ParseOverlays("ema"); !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery for unknown overlay, got %v", err)
	}
}

func TestQueryValidate(t *testing.T) {
	tests := []struct {
		name  string
		q     Query
		valid bool
	}{
		{"plain", Query{Ticker: "SPY", LookbackYears: 1}, true},
		{"index", Query{Ticker: "^GSPC", LookbackYears: 5}, true},
		{"class share", Query{Ticker: "BRK-B", LookbackYears: 3}, true},
		{"empty", Query{Ticker: "", LookbackYears: 1}, false},
		{"lower case", Query{Ticker: "spy", LookbackYears: 1}, false},
		{"too long", Query{Ticker: "ABCDEFGHIJKLMNOPQ", LookbackYears: 1}, false},
		{"zero years", Query{Ticker: "SPY", LookbackYears: 0}, false},
		{"six years", Query{Ticker: "SPY", LookbackYears: 6}, false},
	}
	for _, tt := range tests {
		err := tt.q.Validate()
		if tt.valid && err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
		}
		if !tt.valid && !errors.Is(err, ErrInvalidQuery) {
			t.Errorf("%s: expected ErrInvalidQuery, got %v", tt.name, err)
		}
	}
}

func TestNormalizeTicker(t *testing.T) {
	if got := NormalizeTicker("  aapl "); got != "AAPL" {
		t.Errorf("expected AAPL, got %q", got)
	}
}

func TestLookbackRange(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	from, to := LookbackRange(now, 1)
	if !to.Equal(now) {
		t.Errorf("expected to == now, got %v", to)
	}
	// 2024 is a leap year; 365 plain days back lands on March 2nd.
	want := time.Date(2023, 3, 2, 12, 0, 0, 0, time.UTC)
	if !from.Equal(want) {
		t.Errorf("expected from %v, got %v", want, from)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{FormatPrice(123.456), "$123.46"},
		{FormatPrice(10), "$10.00"},
		{FormatPrice(math.NaN()), "n/a"},
		{FormatRSI(54.213), "54.21"},
		{FormatRSI(math.Inf(1)), "n/a"},
		{FormatPercent(0.25), "25%"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, tt.got)
		}
	}
}
