package model

import "time"

// Quote is the latest USD quote for one symbol, taken from a single API response.
type Quote struct {
	Symbol           string
	Price            float64
	PercentChange24h float64
	Volume24h        float64
	FetchedAt        time.Time
}

// VolumeSplit is a buy/sell breakdown of the 24h volume.
// The upstream API has no directional volume, so this is always simulated.
type VolumeSplit struct {
	Buy  float64
	Sell float64
}

// Total returns buy + sell.
func (v VolumeSplit) Total() float64 {
	return v.Buy + v.Sell
}

// Asset is a symbol shown on the dashboard together with its display name.
type Asset struct {
	Symbol string `yaml:"symbol"`
	Name   string `yaml:"name"`
}
