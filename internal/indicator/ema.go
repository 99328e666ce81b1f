package indicator

import (
	"github.com/finsight-dev/finsight/internal/types"
	"github.com/finsight-dev/finsight/pkg/errors"
)

// EMA indicator implements the Exponential Moving Average over closing prices.
type EMA struct {
	window int
}

// NewEMA creates an EMA indicator from the given configuration.
func NewEMA(cfg WindowConfig) (Indicator, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidWindow, err, "invalid EMA configuration: window must be a positive integer, got %d", cfg.Window)
	}

	return &EMA{window: cfg.Window}, nil
}

// Name returns the name of the indicator.
func (e *EMA) Name() types.IndicatorType {
	return types.IndicatorTypeEMA
}

// Columns returns the output column names.
func (e *EMA) Columns() []string {
	return []string{types.EMAColumn(e.window)}
}

// MinObservations returns the lookback window.
func (e *EMA) MinObservations() int {
	return e.window
}

// Compute derives the EMA column, seeded with the SMA of the first window
// closes and recursed forward.
func (e *EMA) Compute(series *types.Series) (types.IndicatorResult, error) {
	closes := series.Closes()

	if defined := countDefined(closes); defined < e.window {
		return nil, errors.NewInsufficientDataErrorf(e.window, defined, series.Symbol,
			"insufficient history for EMA%d: required %d closes, got %d", e.window, e.window, defined)
	}

	return types.IndicatorResult{
		types.EMAColumn(e.window): computeEMA(closes, e.window),
	}, nil
}
