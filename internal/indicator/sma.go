package indicator

import (
	"github.com/finsight-dev/finsight/internal/types"
	"github.com/finsight-dev/finsight/pkg/errors"
)

// SMA indicator implements the Simple Moving Average over closing prices.
type SMA struct {
	window int
}

// NewSMA creates an SMA indicator from the given configuration.
func NewSMA(cfg WindowConfig) (Indicator, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidWindow, err, "invalid SMA configuration: window must be a positive integer, got %d", cfg.Window)
	}

	return &SMA{window: cfg.Window}, nil
}

// Name returns the name of the indicator.
func (s *SMA) Name() types.IndicatorType {
	return types.IndicatorTypeSMA
}

// Columns returns the output column names.
func (s *SMA) Columns() []string {
	return []string{types.SMAColumn(s.window)}
}

// MinObservations returns the lookback window.
func (s *SMA) MinObservations() int {
	return s.window
}

// Compute derives the SMA column. The first window-1 positions are undefined,
// as is any position whose trailing window covers a missing close.
func (s *SMA) Compute(series *types.Series) (types.IndicatorResult, error) {
	closes := series.Closes()

	if defined := countDefined(closes); defined < s.window {
		return nil, errors.NewInsufficientDataErrorf(s.window, defined, series.Symbol,
			"insufficient history for SMA%d: required %d closes, got %d", s.window, s.window, defined)
	}

	return types.IndicatorResult{
		types.SMAColumn(s.window): computeSMA(closes, s.window),
	}, nil
}
