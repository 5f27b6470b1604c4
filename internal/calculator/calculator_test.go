package calculator

import (
	"math"
	"testing"

	"CryptoDash/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestSplitVolume_SumsToVolume(t *testing.T) {
	for _, v := range []float64{0, 1, 10, 1000000, 25_000_000_000, 123456.5} {
		s := SplitVolume(v)
		assert.Equal(t, v, s.Buy+s.Sell, "volume %v", v)
		assert.Equal(t, v, s.Total(), "volume %v", v)
	}
}

func TestSplitVolume_Ratio(t *testing.T) {
	s := SplitVolume(1000000)
	assert.Equal(t, 600000.0, s.Buy)
	assert.Equal(t, 400000.0, s.Sell)

	s = SplitVolume(123456.5)
	assert.InDelta(t, 123456.5*SyntheticSellRatio, s.Sell, 1e-6)
}

func TestBuyShare(t *testing.T) {
	assert.InDelta(t, 60.0, BuyShare(SplitVolume(1000000)), 1e-9)
	assert.InDelta(t, 25.0, BuyShare(model.VolumeSplit{Buy: 1, Sell: 3}), 1e-9)
}

func TestBuyShare_ZeroVolumeIsNaN(t *testing.T) {
	assert.True(t, math.IsNaN(BuyShare(SplitVolume(0))))
}

func TestHalfGauge(t *testing.T) {
	g := HalfGauge(SplitVolume(1000))

	assert.Equal(t, 80.0, g.Radius)
	assert.Equal(t, 40.0, g.StrokeWidth)
	assert.Equal(t, "M 180 100 A 80 80 0 0 0 20 100", g.Path)
	assert.InDelta(t, math.Pi*80, g.Length, 1e-9)
	assert.InDelta(t, g.Length*0.6, g.BuyLength, 1e-9)
	assert.InDelta(t, g.Length*0.4, g.SellLength, 1e-9)
	assert.InDelta(t, g.Length, g.BuyLength+g.SellLength, 1e-9)
}

func TestHalfGauge_Empty(t *testing.T) {
	g := HalfGauge(model.VolumeSplit{})
	assert.Zero(t, g.BuyLength)
	assert.Zero(t, g.SellLength)
	assert.NotEmpty(t, g.Path)
}
