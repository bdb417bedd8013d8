package engine

import (
	"fmt"

	"DataRizzer/internal/calculator"
	"DataRizzer/internal/model"
	"DataRizzer/internal/strategy"
)

// Config holds the indicator windows, in trading days.
type Config struct {
	ShortWindow int
	LongWindow  int
	RSIPeriod   int
}

// DefaultConfig returns the 50/200-day averages and a 14-day RSI.
func DefaultConfig() Config {
	return Config{ShortWindow: 50, LongWindow: 200, RSIPeriod: calculator.DefaultRSIPeriod}
}

// Engine derives indicators, a summary and a recommendation from a price series.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	cfg Config
}

// New creates an Engine after checking the windows are positive.
func New(cfg Config) (*Engine, error) {
	if cfg.ShortWindow <= 0 {
		return nil, fmt.Errorf("short window must be positive, got %d", cfg.ShortWindow)
	}
	if cfg.LongWindow <= 0 {
		return nil, fmt.Errorf("long window must be positive, got %d", cfg.LongWindow)
	}
	if cfg.RSIPeriod <= 0 {
		return nil, fmt.Errorf("rsi period must be positive, got %d", cfg.RSIPeriod)
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the windows the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Analyze runs one full derivation pass over the series.
// An empty series gives empty indicators, NaN scalars and a Hold verdict.
func (e *Engine) Analyze(series *model.PriceSeries) (*model.Analysis, error) {
	closes := series.Closes()

	shortMA, err := calculator.MovingAverage(closes, e.cfg.ShortWindow)
	if err != nil {
		return nil, fmt.Errorf("short moving average: %w", err)
	}
	longMA, err := calculator.MovingAverage(closes, e.cfg.LongWindow)
	if err != nil {
		return nil, fmt.Errorf("long moving average: %w", err)
	}
	rsi, err := calculator.RSI(closes, e.cfg.RSIPeriod)
	if err != nil {
		return nil, fmt.Errorf("rsi: %w", err)
	}

	support, resistance := calculator.SupportResistance(closes)
	latestClose := calculator.Last(closes)
	sum := model.Summary{
		Support:          support,
		Resistance:       resistance,
		RangePosition:    calculator.RangePosition(latestClose, support, resistance),
		LatestClose:      latestClose,
		LatestShortMA:    calculator.Last(shortMA),
		LatestLongMA:     calculator.Last(longMA),
		LatestRSI:        calculator.Last(rsi),
		Points:           len(closes),
		InsufficientData: len(closes) < 2,
	}
	if last, ok := series.Last(); ok {
		sum.LatestTime = last.Time
	}

	a := &model.Analysis{
		Indicators:     model.IndicatorSet{ShortMA: shortMA, LongMA: longMA, RSI: rsi},
		Summary:        sum,
		Recommendation: strategy.Recommend(sum.LatestRSI),
	}
	if series != nil {
		a.Symbol = series.Symbol
		a.Points = series.Points
	}
	return a, nil
}
