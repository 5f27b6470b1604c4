package calculator

import "CryptoDash/internal/model"

// The quotes API reports a single 24h volume with no buy/sell direction.
// These ratios are placeholders that produce a simulated split for the gauge.
const (
	SyntheticBuyRatio  = 0.6
	SyntheticSellRatio = 0.4
)

// SplitVolume derives the simulated buy/sell split from a 24h volume.
// Sell is taken as the remainder so that Buy+Sell == volume24h exactly;
// it equals volume24h*SyntheticSellRatio up to float rounding.
func SplitVolume(volume24h float64) model.VolumeSplit {
	buy := volume24h * SyntheticBuyRatio
	return model.VolumeSplit{
		Buy:  buy,
		Sell: volume24h - buy,
	}
}
