package model

// SeriesKey identifies one series of the volume gauge.
type SeriesKey string

const (
	SeriesBuy  SeriesKey = "buy"
	SeriesSell SeriesKey = "sell"
)

// SeriesStyle is the label and colour used to draw a series.
type SeriesStyle struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// ChartConfig maps each gauge series to its style. Treat it as read-only.
type ChartConfig map[SeriesKey]SeriesStyle

// DefaultChartConfig returns the gauge styling. Colours resolve against the page theme.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		SeriesBuy:  {Label: "Buy Volume", Color: "hsl(var(--success))"},
		SeriesSell: {Label: "Sell Volume", Color: "hsl(var(--destructive))"},
	}
}

// Style returns the style for key, or a neutral fallback if the key is missing.
func (c ChartConfig) Style(key SeriesKey) SeriesStyle {
	if s, ok := c[key]; ok {
		return s
	}
	return SeriesStyle{Label: string(key), Color: "currentColor"}
}
