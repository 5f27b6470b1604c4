package dashboard

import (
	"context"
	"testing"
	"time"

	"CryptoDash/internal/collector"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_DefaultAssets(t *testing.T) {
	d := New(nil, collector.NewMockFetcher(), Options{})

	views := d.Views(cfg)
	require.Len(t, views, 3)
	assert.Equal(t, "BTC", views[0].Symbol)
	assert.Equal(t, "Ethereum", views[1].Name)
	assert.Equal(t, "SOL", views[2].Symbol)
}

func TestDashboard_PanelsAreIndependent(t *testing.T) {
	f := collector.NewMockFetcher()
	f.SetQuote("BTC", 67000.125, 3.4, 1000000)
	f.SetQuote("ETH", 3000, -1.25, 500)
	// SOL has no quote configured, so its fetch fails.

	d := New(DefaultAssets, f, Options{Interval: time.Hour})
	require.NoError(t, d.Start(context.Background()))
	defer d.Stop()

	require.Eventually(t, func() bool {
		return d.Panel("BTC").View(cfg).Loaded && d.Panel("eth").View(cfg).Loaded
	}, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return f.Calls("SOL") == 1 }, 2*time.Second, 10*time.Millisecond)

	views := d.Views(cfg)
	assert.Equal(t, "$67,000.13", views[0].Price)
	assert.Equal(t, "down 1.25%", views[1].TrendLabel)
	assert.False(t, views[2].Loaded)
	assert.Equal(t, "$0", views[2].Price)
}

func TestDashboard_StopUnmountsAll(t *testing.T) {
	d := New(DefaultAssets, collector.NewMockFetcher(), Options{Interval: time.Hour})
	require.NoError(t, d.Start(context.Background()))

	d.Stop()
	for _, p := range d.Panels() {
		assert.False(t, p.Mounted())
	}
}

func TestDashboard_PanelLookupFollowsSymbolChange(t *testing.T) {
	d := New(DefaultAssets, collector.NewMockFetcher(), Options{})
	require.NoError(t, d.Panel("SOL").SetAsset(ether))

	assert.Nil(t, d.Panel("SOL"))
	assert.NotNil(t, d.Panel("ETH"))
}
