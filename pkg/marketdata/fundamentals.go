package marketdata

import (
	"github.com/shopspring/decimal"

	"github.com/finsight-dev/finsight/internal/types"
)

// NormalizePercent maps a ratio-or-percent field onto a percent scale.
// Providers are inconsistent about dividend yield and margin fields:
// some report 0.0042 (a ratio), others 0.42 (already percent). Values
// in (0, 1) are treated as ratios and scaled by 100; zero and values
// at or above 1 pass through unchanged.
func NormalizePercent(v float64) float64 {
	if !types.HasField(v) {
		return v
	}

	if v > 0 && v < 1 {
		return v * 100
	}

	return v
}

// FormatPercent renders a ratio-or-percent field as "4.20%", or "-"
// when missing.
func FormatPercent(v float64) string {
	if !types.HasField(v) {
		return "-"
	}

	return decimal.NewFromFloat(NormalizePercent(v)).Round(2).String() + "%"
}

// FormatRatio renders a plain numeric field to two decimal places, or
// "-" when missing.
func FormatRatio(v float64) string {
	if !types.HasField(v) {
		return "-"
	}

	return decimal.NewFromFloat(v).Round(2).String()
}

// FormatPrice renders a price field to two decimal places with trailing
// zeros kept, or "-" when missing.
func FormatPrice(v float64) string {
	if !types.HasField(v) {
		return "-"
	}

	return decimal.NewFromFloat(v).StringFixed(2)
}

var marketCapUnits = []struct {
	threshold decimal.Decimal
	suffix    string
}{
	{decimal.New(1, 12), "T"},
	{decimal.New(1, 9), "B"},
	{decimal.New(1, 6), "M"},
	{decimal.New(1, 3), "K"},
}

// FormatMarketCap renders a market cap with a scale suffix, e.g.
// "2.95T" or "341.2B", or "-" when missing.
func FormatMarketCap(v float64) string {
	if !types.HasField(v) || v <= 0 {
		return "-"
	}

	value := decimal.NewFromFloat(v)
	for _, unit := range marketCapUnits {
		if value.GreaterThanOrEqual(unit.threshold) {
			return value.Div(unit.threshold).Round(2).String() + unit.suffix
		}
	}

	return value.Round(0).String()
}
