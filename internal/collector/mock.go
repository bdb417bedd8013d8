package collector

import (
	"context"
	"sync"
	"time"

	"DataRizzer/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Closes are laid out one per day ending at the requested end date.
type MockFetcher struct {
	Closes map[string][]float64
	Err    error

	mu    sync.Mutex
	calls int
}

func (m *MockFetcher) Name() string { return "mock" }

// Calls returns how many fetches have been made.
func (m *MockFetcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockFetcher) FetchDaily(_ context.Context, symbol string, _, to time.Time) (*model.PriceSeries, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.Err != nil {
		return nil, &FetchError{Source: m.Name(), Symbol: symbol, Err: m.Err}
	}
	closes := m.Closes[symbol]
	end := to.UTC().Truncate(24 * time.Hour)
	points := make([]model.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = model.PricePoint{
			Time:     end.AddDate(0, 0, -(len(closes) - 1 - i)),
			AdjClose: c,
		}
	}
	return &model.PriceSeries{Symbol: symbol, Points: points, FetchedAt: to}, nil
}
