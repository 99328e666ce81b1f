package indicator

import (
	"math"

	"github.com/finsight-dev/finsight/internal/types"
	"github.com/finsight-dev/finsight/pkg/errors"
)

// BollingerBands implements volatility bands at multiplier standard
// deviations around a simple moving average.
type BollingerBands struct {
	window     int
	multiplier float64
}

// NewBollingerBands creates a Bollinger Bands indicator from the given configuration.
func NewBollingerBands(cfg BollingerConfig) (Indicator, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidMultiplier, err,
			"invalid Bollinger Bands configuration: window %d and multiplier %f must be positive", cfg.Window, cfg.Multiplier)
	}

	return &BollingerBands{
		window:     cfg.Window,
		multiplier: cfg.Multiplier,
	}, nil
}

// Name returns the name of the indicator.
func (bb *BollingerBands) Name() types.IndicatorType {
	return types.IndicatorTypeBollingerBands
}

// Columns returns the output column names.
func (bb *BollingerBands) Columns() []string {
	return []string{types.ColumnBBHigh, types.ColumnBBMid, types.ColumnBBLow}
}

// MinObservations returns the lookback window.
func (bb *BollingerBands) MinObservations() int {
	return bb.window
}

// Compute derives the three band columns. The mid band is the SMA of the
// window; upper and lower sit at multiplier population standard deviations
// around it.
func (bb *BollingerBands) Compute(series *types.Series) (types.IndicatorResult, error) {
	closes := series.Closes()

	if defined := countDefined(closes); defined < bb.window {
		return nil, errors.NewInsufficientDataErrorf(bb.window, defined, series.Symbol,
			"insufficient history for Bollinger Bands: required %d closes, got %d", bb.window, defined)
	}

	mid := computeSMA(closes, bb.window)
	high := undefinedColumn(len(closes))
	low := undefinedColumn(len(closes))

	for i := bb.window - 1; i < len(closes); i++ {
		if math.IsNaN(mid[i]) {
			continue
		}

		var squaredDiffSum float64

		for j := i - bb.window + 1; j <= i; j++ {
			diff := closes[j] - mid[i]
			squaredDiffSum += diff * diff
		}

		stdDev := math.Sqrt(squaredDiffSum / float64(bb.window))
		high[i] = mid[i] + (bb.multiplier * stdDev)
		low[i] = mid[i] - (bb.multiplier * stdDev)
	}

	return types.IndicatorResult{
		types.ColumnBBHigh: high,
		types.ColumnBBMid:  mid,
		types.ColumnBBLow:  low,
	}, nil
}
