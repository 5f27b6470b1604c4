package dashboard

import (
	"context"
	"fmt"
	"strings"

	"CryptoDash/internal/collector"
	"CryptoDash/internal/display"
	"CryptoDash/internal/model"
)

// DefaultAssets are the panels shown when none are configured.
var DefaultAssets = []model.Asset{
	{Symbol: "BTC", Name: "Bitcoin"},
	{Symbol: "ETH", Name: "Ethereum"},
	{Symbol: "SOL", Name: "Solana"},
}

// Dashboard is a fixed set of independent panels.
type Dashboard struct {
	panels []*Panel
}

// New creates one unmounted panel per asset, in order.
func New(assets []model.Asset, fetcher collector.Fetcher, opts Options) *Dashboard {
	if len(assets) == 0 {
		assets = DefaultAssets
	}
	d := &Dashboard{panels: make([]*Panel, 0, len(assets))}
	for _, a := range assets {
		d.panels = append(d.panels, NewPanel(a, fetcher, opts))
	}
	return d
}

// Start mounts every panel. If one fails, the ones already mounted are unmounted.
func (d *Dashboard) Start(ctx context.Context) error {
	for i, p := range d.panels {
		if err := p.Mount(ctx); err != nil {
			for _, mounted := range d.panels[:i] {
				mounted.Unmount()
			}
			return fmt.Errorf("start dashboard: %w", err)
		}
	}
	log.Infof("dashboard started with %d panels", len(d.panels))
	return nil
}

// Stop unmounts every panel.
func (d *Dashboard) Stop() {
	for _, p := range d.panels {
		p.Unmount()
	}
	log.Info("dashboard stopped")
}

// Views renders every panel in order.
func (d *Dashboard) Views(cfg model.ChartConfig) []display.View {
	out := make([]display.View, 0, len(d.panels))
	for _, p := range d.panels {
		out = append(out, p.View(cfg))
	}
	return out
}

// Panel returns the panel currently showing symbol, or nil.
func (d *Dashboard) Panel(symbol string) *Panel {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	for _, p := range d.panels {
		if p.Asset().Symbol == symbol {
			return p
		}
	}
	return nil
}

// Panels returns the panels in display order.
func (d *Dashboard) Panels() []*Panel {
	return d.panels
}
