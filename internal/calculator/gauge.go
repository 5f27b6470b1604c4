package calculator

import (
	"math"
	"strconv"

	"CryptoDash/internal/model"
)

// BuyShare returns buy / (buy + sell) * 100.
// A zero total yields NaN, which callers render as "NaN%".
func BuyShare(split model.VolumeSplit) float64 {
	return split.Buy / split.Total() * 100
}

// Half-gauge dimensions, in SVG user units.
const (
	GaugeCenterX     = 100.0
	GaugeCenterY     = 100.0
	GaugeInnerRadius = 60.0
	GaugeOuterRadius = 100.0
)

// GaugeArc describes a half-circle gauge drawn as one stroked arc per series.
// The arc runs from 0° (right) to 180° (left) over the top; buy is stacked first.
type GaugeArc struct {
	Path        string  // SVG path of the full half circle
	Radius      float64 // centre line radius of the stroke
	StrokeWidth float64
	Length      float64 // length of the full half circle
	BuyLength   float64
	SellLength  float64
}

// HalfGauge computes the stacked arc lengths for split.
// An empty split draws nothing.
func HalfGauge(split model.VolumeSplit) GaugeArc {
	r := (GaugeInnerRadius + GaugeOuterRadius) / 2
	arc := GaugeArc{
		Path:        halfCirclePath(GaugeCenterX, GaugeCenterY, r),
		Radius:      r,
		StrokeWidth: GaugeOuterRadius - GaugeInnerRadius,
		Length:      math.Pi * r,
	}
	total := split.Total()
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return arc
	}
	arc.BuyLength = arc.Length * split.Buy / total
	arc.SellLength = arc.Length * split.Sell / total
	return arc
}

func halfCirclePath(cx, cy, r float64) string {
	// right end -> left end, counter-clockwise on screen
	return "M " + ftoa(cx+r) + " " + ftoa(cy) +
		" A " + ftoa(r) + " " + ftoa(r) + " 0 0 0 " + ftoa(cx-r) + " " + ftoa(cy)
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
