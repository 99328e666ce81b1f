package indicator

import (
	"math"

	"github.com/finsight-dev/finsight/internal/types"
	"github.com/finsight-dev/finsight/pkg/errors"
)

// MACD implements the Moving Average Convergence Divergence indicator:
// line = EMA(fast) - EMA(slow), signal = EMA(signal) of the line,
// histogram = line - signal.
type MACD struct {
	fast   int
	slow   int
	signal int
}

// NewMACD creates a MACD indicator from the given configuration.
func NewMACD(cfg MACDConfig) (Indicator, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidMACDWindows, err,
			"invalid MACD configuration: windows must be positive and fast (%d) < slow (%d)", cfg.Fast, cfg.Slow)
	}

	return &MACD{
		fast:   cfg.Fast,
		slow:   cfg.Slow,
		signal: cfg.Signal,
	}, nil
}

// Name returns the name of the indicator.
func (m *MACD) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Columns returns the output column names.
func (m *MACD) Columns() []string {
	return []string{types.ColumnMACDLine, types.ColumnMACDSignal, types.ColumnMACDHist}
}

// MinObservations returns the dominant window, the slow EMA.
func (m *MACD) MinObservations() int {
	return m.slow
}

// Compute derives the three MACD columns. The line is defined once the slow
// window is met; the signal and histogram follow once the signal EMA has
// seeded over the line's defined values.
func (m *MACD) Compute(series *types.Series) (types.IndicatorResult, error) {
	closes := series.Closes()

	if defined := countDefined(closes); defined < m.slow {
		return nil, errors.NewInsufficientDataErrorf(m.slow, defined, series.Symbol,
			"insufficient history for MACD: required %d closes, got %d", m.slow, defined)
	}

	fastEMA := computeEMA(closes, m.fast)
	slowEMA := computeEMA(closes, m.slow)

	line := undefinedColumn(len(closes))
	for i := range closes {
		if !math.IsNaN(fastEMA[i]) && !math.IsNaN(slowEMA[i]) {
			line[i] = fastEMA[i] - slowEMA[i]
		}
	}

	signal := computeEMAOver(line, m.signal)

	hist := undefinedColumn(len(closes))
	for i := range closes {
		if !math.IsNaN(line[i]) && !math.IsNaN(signal[i]) {
			hist[i] = line[i] - signal[i]
		}
	}

	return types.IndicatorResult{
		types.ColumnMACDLine:   line,
		types.ColumnMACDSignal: signal,
		types.ColumnMACDHist:   hist,
	}, nil
}
