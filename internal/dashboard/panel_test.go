package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"CryptoDash/internal/collector"
	"CryptoDash/internal/display"
	"CryptoDash/internal/model"
	"CryptoDash/internal/recorder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	cfg     = model.DefaultChartConfig()
	bitcoin = model.Asset{Symbol: "BTC", Name: "Bitcoin"}
	ether   = model.Asset{Symbol: "ETH", Name: "Ethereum"}
)

// gateFetcher blocks each fetch of a symbol until its gate is opened.
// It ignores ctx, like a request the transport never abandons.
type gateFetcher struct {
	mu       sync.Mutex
	gates    map[string]chan struct{}
	quotes   map[string]model.Quote
	returned map[string]int
}

func newGateFetcher() *gateFetcher {
	return &gateFetcher{
		gates:    make(map[string]chan struct{}),
		quotes:   make(map[string]model.Quote),
		returned: make(map[string]int),
	}
}

func (g *gateFetcher) Name() string { return "gate" }

func (g *gateFetcher) set(symbol string, price float64, open bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.quotes[symbol] = model.Quote{Symbol: symbol, Price: price, PercentChange24h: 1, Volume24h: 100}
	ch := make(chan struct{})
	if open {
		close(ch)
	}
	g.gates[symbol] = ch
}

func (g *gateFetcher) open(symbol string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	close(g.gates[symbol])
}

func (g *gateFetcher) returnedCount(symbol string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.returned[symbol]
}

func (g *gateFetcher) FetchQuote(_ context.Context, symbol string) (*model.Quote, error) {
	g.mu.Lock()
	gate, ok := g.gates[symbol]
	g.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("gate [%s]: %w", symbol, collector.ErrMalformed)
	}
	<-gate

	g.mu.Lock()
	defer g.mu.Unlock()
	g.returned[symbol]++
	q := g.quotes[symbol]
	q.FetchedAt = time.Now()
	return &q, nil
}

func loaded(p *Panel) func() bool {
	return func() bool { return p.View(cfg).Loaded }
}

// labels drops fields that legitimately change between polls.
func labels(v display.View) display.View {
	v.UpdatedAt = time.Time{}
	v.Quote.FetchedAt = time.Time{}
	return v
}

func currentGen(p *Panel) (uint64, string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gen, p.asset.Symbol
}

func TestPanel_Scenario(t *testing.T) {
	f := collector.NewMockFetcher()
	f.SetQuote("BTC", 67000.125, 3.4, 1000000)

	p := NewPanel(bitcoin, f, Options{Interval: time.Hour})
	require.NoError(t, p.Mount(context.Background()))
	defer p.Unmount()

	require.Eventually(t, loaded(p), 2*time.Second, 10*time.Millisecond)
	v := p.View(cfg)
	assert.Equal(t, "Bitcoin", v.Name)
	assert.Equal(t, "$67,000.13", v.Price)
	assert.Equal(t, "up 3.40%", v.TrendLabel)
	assert.Equal(t, "60.0%", v.BuyShare)
	assert.Equal(t, "$1,000,000", v.Volume)
}

func TestPanel_InitialStateBeforeFirstPoll(t *testing.T) {
	p := NewPanel(bitcoin, collector.NewMockFetcher(), Options{})
	v := p.View(cfg)

	assert.False(t, v.Loaded)
	assert.Equal(t, "$0", v.Price)
	assert.Equal(t, "NaN%", v.BuyShare)
}

func TestPanel_ZeroVolumeRendersNaN(t *testing.T) {
	f := collector.NewMockFetcher()
	f.SetQuote("BTC", 10, -1, 0)

	p := NewPanel(bitcoin, f, Options{Interval: time.Hour})
	require.NoError(t, p.Mount(context.Background()))
	defer p.Unmount()

	require.Eventually(t, loaded(p), 2*time.Second, 10*time.Millisecond)
	v := p.View(cfg)
	assert.Equal(t, "NaN%", v.BuyShare)
	assert.Equal(t, "down 1.00%", v.TrendLabel)
	assert.Equal(t, "$0", v.Volume)
}

func TestPanel_SameResponseTwiceIsIdempotent(t *testing.T) {
	f := collector.NewMockFetcher()
	f.SetQuote("BTC", 50000, -2.25, 42000)

	p := NewPanel(bitcoin, f, Options{Interval: time.Hour})
	require.NoError(t, p.Mount(context.Background()))
	defer p.Unmount()
	require.Eventually(t, loaded(p), 2*time.Second, 10*time.Millisecond)
	first := labels(p.View(cfg))

	gen, symbol := currentGen(p)
	p.refresh(context.Background(), gen, symbol)

	assert.Equal(t, 2, f.Calls("BTC"))
	assert.Equal(t, first, labels(p.View(cfg)))
}

func TestPanel_FailureKeepsPreviousValues(t *testing.T) {
	f := collector.NewMockFetcher()
	f.SetQuote("BTC", 50000, 1.5, 42000)

	p := NewPanel(bitcoin, f, Options{Interval: time.Hour})
	require.NoError(t, p.Mount(context.Background()))
	defer p.Unmount()
	require.Eventually(t, loaded(p), 2*time.Second, 10*time.Millisecond)
	before := p.View(cfg)

	gen, symbol := currentGen(p)
	for _, err := range []error{collector.ErrNetwork, collector.ErrMalformed, errors.New("boom")} {
		f.SetError(err)
		p.refresh(context.Background(), gen, symbol)
		assert.Equal(t, before, p.View(cfg))
	}
}

func TestPanel_SymbolChangeDiscardsInFlightResponse(t *testing.T) {
	g := newGateFetcher()
	g.set("BTC", 67000, false)
	g.set("ETH", 3000, true)

	p := NewPanel(bitcoin, g, Options{Interval: time.Hour})
	require.NoError(t, p.Mount(context.Background()))
	defer p.Unmount()

	// BTC fetch is now blocked; switch to ETH.
	require.NoError(t, p.SetAsset(ether))
	require.Eventually(t, loaded(p), 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "$3,000", p.View(cfg).Price)

	g.open("BTC")
	require.Eventually(t, func() bool { return g.returnedCount("BTC") == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	v := p.View(cfg)
	assert.Equal(t, "ETH", v.Symbol)
	assert.Equal(t, "Ethereum", v.Name)
	assert.Equal(t, "$3,000", v.Price)
}

func TestPanel_UnmountDiscardsLateResponse(t *testing.T) {
	g := newGateFetcher()
	g.set("BTC", 67000, false)

	p := NewPanel(bitcoin, g, Options{Interval: time.Hour})
	require.NoError(t, p.Mount(context.Background()))
	p.Unmount()
	assert.False(t, p.Mounted())

	g.open("BTC")
	require.Eventually(t, func() bool { return g.returnedCount("BTC") == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	assert.False(t, p.View(cfg).Loaded)
}

func TestPanel_SetAssetSameSymbolKeepsState(t *testing.T) {
	f := collector.NewMockFetcher()
	f.SetQuote("BTC", 1, 1, 1)

	p := NewPanel(bitcoin, f, Options{Interval: time.Hour})
	require.NoError(t, p.Mount(context.Background()))
	defer p.Unmount()
	require.Eventually(t, loaded(p), 2*time.Second, 10*time.Millisecond)

	require.NoError(t, p.SetAsset(model.Asset{Symbol: "btc", Name: "BTC"}))
	assert.True(t, p.View(cfg).Loaded)
	assert.Equal(t, "BTC", p.View(cfg).Name)
	assert.Equal(t, 1, f.Calls("BTC"))
}

func TestPanel_RejectsEmptySymbol(t *testing.T) {
	p := NewPanel(model.Asset{Symbol: " "}, collector.NewMockFetcher(), Options{})
	assert.Error(t, p.Mount(context.Background()))
	assert.Error(t, p.SetAsset(model.Asset{}))
}

type captureRecorder struct {
	mu     sync.Mutex
	events []recorder.QuoteEvent
}

func (c *captureRecorder) RecordQuote(evt *recorder.QuoteEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, *evt)
	return nil
}

func (c *captureRecorder) Close() error { return nil }

func (c *captureRecorder) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func TestPanel_RecordsAppliedQuotes(t *testing.T) {
	f := collector.NewMockFetcher()
	f.SetQuote("BTC", 100, 1, 1000)
	rec := &captureRecorder{}

	p := NewPanel(bitcoin, f, Options{Interval: time.Hour, Recorder: rec})
	require.NoError(t, p.Mount(context.Background()))
	defer p.Unmount()

	require.Eventually(t, func() bool { return rec.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	rec.mu.Lock()
	evt := rec.events[0]
	rec.mu.Unlock()
	assert.Equal(t, 100.0, evt.Quote.Price)
	assert.Equal(t, 600.0, evt.Split.Buy)
	assert.Equal(t, 400.0, evt.Split.Sell)
}
