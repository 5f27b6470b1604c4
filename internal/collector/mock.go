package collector

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"CryptoDash/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	mu     sync.Mutex
	quotes map[string]model.Quote
	err    error
	calls  map[string]int
}

// NewMockFetcher creates a mock with no quotes; unknown symbols fail as malformed.
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		quotes: make(map[string]model.Quote),
		calls:  make(map[string]int),
	}
}

func (m *MockFetcher) Name() string { return "mock" }

// SetQuote sets the quote returned for symbol.
func (m *MockFetcher) SetQuote(symbol string, price, change24h, volume24h float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	symbol = strings.ToUpper(symbol)
	m.quotes[symbol] = model.Quote{
		Symbol:           symbol,
		Price:            price,
		PercentChange24h: change24h,
		Volume24h:        volume24h,
	}
}

// SetError makes every fetch fail with err until cleared with nil.
func (m *MockFetcher) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times symbol was fetched.
func (m *MockFetcher) Calls(symbol string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[strings.ToUpper(symbol)]
}

func (m *MockFetcher) FetchQuote(_ context.Context, symbol string) (*model.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	symbol = strings.ToUpper(symbol)
	m.calls[symbol]++
	if m.err != nil {
		return nil, m.err
	}
	q, ok := m.quotes[symbol]
	if !ok {
		return nil, fmt.Errorf("mock [%s]: %w: no quote configured", symbol, ErrMalformed)
	}
	q.FetchedAt = time.Now()
	return &q, nil
}
