package dashboard

import (
	"context"
	"fmt"
	"time"

	"DataRizzer/internal/collector"
	"DataRizzer/internal/engine"
	"DataRizzer/internal/logger"
	"DataRizzer/internal/metrics"
	"DataRizzer/internal/model"
)

// Service runs one fetch -> compute -> chart pass per query.
// It keeps no per-query state and is safe for concurrent use.
type Service struct {
	fetcher collector.Fetcher
	engine  *engine.Engine
	metrics *metrics.Recorder
	log     *logger.Logger
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the wall clock used to derive date ranges.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new Service.
func NewService(f collector.Fetcher, e *engine.Engine, m *metrics.Recorder, l *logger.Logger, opts ...Option) *Service {
	s := &Service{
		fetcher: f,
		engine:  e,
		metrics: m,
		log:     l.With(logger.String("component", "dashboard")),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Compute validates the query, fetches its price history and derives the
// charts, summary and recommendation.
func (s *Service) Compute(ctx context.Context, q model.Query) (*model.Report, error) {
	q.Ticker = model.NormalizeTicker(q.Ticker)
	if err := q.Validate(); err != nil {
		return nil, err
	}

	from, to := model.LookbackRange(s.now(), q.LookbackYears)

	start := time.Now()
	series, err := s.fetcher.FetchDaily(ctx, q.Ticker, from, to)
	took := time.Since(start)
	s.metrics.RecordFetch(s.fetcher.Name(), took, err)
	if err != nil {
		s.log.Error("fetch failed", logger.String("ticker", q.Ticker), logger.Error(err))
		return nil, fmt.Errorf("fetch %s: %w", q.Ticker, err)
	}

	analysis, err := s.engine.Analyze(series)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", q.Ticker, err)
	}
	analysis.Symbol = q.Ticker
	if analysis.Summary.InsufficientData {
		s.log.Warn("insufficient price history",
			logger.String("ticker", q.Ticker),
			logger.Int("points", analysis.Summary.Points))
	}

	s.metrics.RecordReport(string(analysis.Recommendation.Verdict))
	s.log.Info("report computed",
		logger.String("ticker", q.Ticker),
		logger.Int("years", q.LookbackYears),
		logger.Int("points", analysis.Summary.Points),
		logger.String("verdict", string(analysis.Recommendation.Verdict)),
		logger.Duration("fetch_ms", took))

	return &model.Report{
		Query:       q,
		From:        from,
		To:          to,
		PriceChart:  PriceChart(q, analysis),
		RSIChart:    RSIChart(analysis),
		Analysis:    analysis,
		Source:      s.fetcher.Name(),
		GeneratedAt: s.now(),
	}, nil
}
