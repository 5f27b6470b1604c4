package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"CryptoDash/internal/calculator"
	"CryptoDash/internal/collector"
	"CryptoDash/internal/display"
	"CryptoDash/internal/metrics"
	"CryptoDash/internal/model"
	"CryptoDash/internal/recorder"
	"CryptoDash/internal/scheduler"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "panel")

// Options configures panel polling.
type Options struct {
	Interval time.Duration     // defaults to scheduler.DefaultInterval
	Recorder recorder.Recorder // defaults to a no-op recorder
}

// Panel holds the latest quote for one asset and keeps it fresh while mounted.
// Each panel owns its schedule; panels never share state.
type Panel struct {
	fetcher  collector.Fetcher
	recorder recorder.Recorder
	interval time.Duration

	mu      sync.Mutex
	asset   model.Asset
	quote   model.Quote
	split   model.VolumeSplit
	gen     uint64 // bumped on every mount, unmount and symbol change
	mounted bool
	parent  context.Context
	handle  *scheduler.Handle
}

// NewPanel creates an unmounted panel for asset.
func NewPanel(asset model.Asset, fetcher collector.Fetcher, opts Options) *Panel {
	rec := opts.Recorder
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	asset.Symbol = strings.ToUpper(strings.TrimSpace(asset.Symbol))
	return &Panel{
		fetcher:  fetcher,
		recorder: rec,
		interval: opts.Interval,
		asset:    asset,
	}
}

// Mount starts polling: one fetch now, then one per interval until Unmount.
func (p *Panel) Mount(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mounted {
		return nil
	}
	if p.asset.Symbol == "" {
		return fmt.Errorf("mount panel: empty symbol")
	}
	p.parent = ctx
	p.mounted = true
	return p.startLocked()
}

// Unmount stops polling and discards the panel's state.
// Results of fetches still in flight are dropped when they arrive.
func (p *Panel) Unmount() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.mounted {
		return
	}
	p.mounted = false
	p.gen++
	p.handle.Stop()
	p.handle = nil
	p.quote = model.Quote{}
	p.split = model.VolumeSplit{}
	log.WithField("symbol", p.asset.Symbol).Debug("panel unmounted")
}

// SetAsset switches the panel to another asset. The old schedule is torn down,
// state is reset, and a new schedule starts if the panel is mounted.
func (p *Panel) SetAsset(asset model.Asset) error {
	asset.Symbol = strings.ToUpper(strings.TrimSpace(asset.Symbol))
	if asset.Symbol == "" {
		return fmt.Errorf("set asset: empty symbol")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if asset.Symbol == p.asset.Symbol {
		p.asset.Name = asset.Name
		return nil
	}

	p.gen++
	if p.handle != nil {
		p.handle.Stop()
		p.handle = nil
	}
	p.asset = asset
	p.quote = model.Quote{}
	p.split = model.VolumeSplit{}
	if !p.mounted {
		return nil
	}
	return p.startLocked()
}

func (p *Panel) startLocked() error {
	p.gen++
	gen, symbol := p.gen, p.asset.Symbol
	h, err := scheduler.Start(p.parent, "quote:"+symbol, p.interval, func(ctx context.Context) {
		p.refresh(ctx, gen, symbol)
	})
	if err != nil {
		p.mounted = false
		return fmt.Errorf("start polling %s: %w", symbol, err)
	}
	p.handle = h
	log.WithField("symbol", symbol).Infof("polling every %s", h.Interval())
	return nil
}

// refresh runs one poll for the schedule identified by gen.
// Failures leave the previous values in place.
func (p *Panel) refresh(ctx context.Context, gen uint64, symbol string) {
	l := log.WithField("symbol", symbol)
	start := time.Now()
	q, err := p.fetcher.FetchQuote(ctx, symbol)
	took := time.Since(start)

	if err != nil {
		if !p.isCurrent(gen) {
			metrics.RecordPoll(symbol, metrics.ResultDiscarded, took)
			l.Debugf("discarding failed poll for a stopped schedule: %v", err)
			return
		}
		metrics.RecordPoll(symbol, classify(err), took)
		l.WithError(err).Warn("quote fetch failed, keeping last values")
		return
	}

	split := calculator.SplitVolume(q.Volume24h)

	p.mu.Lock()
	if !p.mounted || gen != p.gen {
		p.mu.Unlock()
		metrics.RecordPoll(symbol, metrics.ResultDiscarded, took)
		l.Debug("discarding late quote for a stopped schedule")
		return
	}
	p.quote = *q
	p.split = split
	p.mu.Unlock()

	metrics.RecordPoll(symbol, metrics.ResultOK, took)
	l.WithFields(logrus.Fields{
		"price":      q.Price,
		"change_24h": q.PercentChange24h,
		"volume_24h": q.Volume24h,
	}).Debug("quote updated")

	if err := p.recorder.RecordQuote(&recorder.QuoteEvent{Quote: q, Split: split}); err != nil {
		l.WithError(err).Warn("record quote failed")
	}
}

func (p *Panel) isCurrent(gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mounted && gen == p.gen
}

func classify(err error) string {
	if errors.Is(err, collector.ErrMalformed) {
		return metrics.ResultMalformed
	}
	return metrics.ResultNetworkError
}

// View renders the current state with cfg.
func (p *Panel) View(cfg model.ChartConfig) display.View {
	p.mu.Lock()
	asset, q, split := p.asset, p.quote, p.split
	p.mu.Unlock()
	return display.Build(asset, q, split, cfg)
}

// Asset returns the asset currently shown.
func (p *Panel) Asset() model.Asset {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.asset
}

// Mounted reports whether the panel is polling.
func (p *Panel) Mounted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mounted
}
