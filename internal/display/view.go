package display

import (
	"time"

	"CryptoDash/internal/calculator"
	"CryptoDash/internal/model"
)

// View is the render-ready projection of one dashboard panel.
type View struct {
	Symbol     string    `json:"symbol"`
	Name       string    `json:"name"`
	Price      string    `json:"price"`
	Trend      Trend     `json:"trend"`
	Change     string    `json:"change"`
	TrendLabel string    `json:"trend_label"`
	BuyShare   string    `json:"buy_share"`
	Volume     string    `json:"volume"`
	Simulated  bool      `json:"volume_split_simulated"`
	Loaded     bool      `json:"loaded"`
	UpdatedAt  time.Time `json:"updated_at"`

	Quote model.Quote         `json:"-"`
	Split model.VolumeSplit   `json:"-"`
	Gauge calculator.GaugeArc `json:"-"`
	Buy   model.SeriesStyle   `json:"buy"`
	Sell  model.SeriesStyle   `json:"sell"`
}

// Build binds the latest quote and split of an asset to display labels.
// A zero quote renders the pre-first-poll state: "$0", "up 0.00%", "NaN%", "$0".
func Build(asset model.Asset, q model.Quote, split model.VolumeSplit, cfg model.ChartConfig) View {
	trend, change := FormatChange(q.PercentChange24h)
	return View{
		Symbol:     asset.Symbol,
		Name:       asset.Name,
		Price:      FormatPrice(q.Price),
		Trend:      trend,
		Change:     change,
		TrendLabel: string(trend) + " " + change,
		BuyShare:   FormatShare(calculator.BuyShare(split)),
		Volume:     FormatVolume(split.Total()),
		Simulated:  true,
		Loaded:     !q.FetchedAt.IsZero(),
		UpdatedAt:  q.FetchedAt,
		Quote:      q,
		Split:      split,
		Gauge:      calculator.HalfGauge(split),
		Buy:        cfg.Style(model.SeriesBuy),
		Sell:       cfg.Style(model.SeriesSell),
	}
}

// Headline is the long form of the trend line, e.g. "Trending up by 3.40%".
func (v View) Headline() string {
	return "Trending " + string(v.Trend) + " by " + v.Change
}
