// Package display turns panel state into render-ready labels.
package display

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Trend is the direction of the 24h change.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// Glyph returns the arrow drawn next to the trend.
func (t Trend) Glyph() string {
	if t == TrendDown {
		return "▼"
	}
	return "▲"
}

// FormatUSD formats v as dollars with thousands separators and at most places
// fraction digits, rounding half away from zero and dropping trailing zeros.
func FormatUSD(v float64, places int32) string {
	if math.IsNaN(v) {
		return "$NaN"
	}
	if math.IsInf(v, 0) {
		if v < 0 {
			return "-$∞"
		}
		return "$∞"
	}

	d := decimal.NewFromFloat(v).Round(places)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	whole := d.Truncate(0)
	s := humanize.Comma(whole.IntPart())
	if frac := d.Sub(whole); !frac.IsZero() {
		s += strings.TrimPrefix(frac.String(), "0")
	}
	return sign + "$" + s
}

// FormatPrice formats a price with at most 2 fraction digits: 67000.125 -> "$67,000.13".
func FormatPrice(price float64) string {
	return FormatUSD(price, 2)
}

// FormatVolume formats a volume with no fraction digits: 1000000 -> "$1,000,000".
func FormatVolume(volume float64) string {
	return FormatUSD(volume, 0)
}

// FormatChange picks the trend for a 24h percent change and formats its magnitude
// with 2 decimals. Zero counts as up.
func FormatChange(change float64) (Trend, string) {
	if math.IsNaN(change) {
		return TrendUp, "NaN%"
	}
	if change >= 0 {
		return TrendUp, fixed(change, 2) + "%"
	}
	return TrendDown, fixed(math.Abs(change), 2) + "%"
}

// FormatShare formats a percentage with 1 decimal. NaN renders as "NaN%".
func FormatShare(share float64) string {
	if math.IsNaN(share) {
		return "NaN%"
	}
	return fixed(share, 1) + "%"
}

func fixed(v float64, places int32) string {
	if math.IsInf(v, 0) {
		if v < 0 {
			return "-∞"
		}
		return "∞"
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}
