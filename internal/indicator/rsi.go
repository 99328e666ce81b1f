package indicator

import (
	"math"

	"github.com/finsight-dev/finsight/internal/types"
	"github.com/finsight-dev/finsight/pkg/errors"
)

// RSI implements the Relative Strength Index via Wilder's smoothing.
type RSI struct {
	window int
}

// NewRSI creates an RSI indicator from the given configuration.
func NewRSI(cfg WindowConfig) (Indicator, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidWindow, err, "invalid RSI configuration: window must be a positive integer, got %d", cfg.Window)
	}

	return &RSI{window: cfg.Window}, nil
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Columns returns the output column names.
func (r *RSI) Columns() []string {
	return []string{types.ColumnRSI}
}

// MinObservations returns the lookback window. The first output needs window
// prior deltas, so window+1 closes.
func (r *RSI) MinObservations() int {
	return r.window + 1
}

// Compute derives the RSI column. Values are always within [0, 100] once
// defined; a window of zero average loss yields exactly 100.
func (r *RSI) Compute(series *types.Series) (types.IndicatorResult, error) {
	closes := series.Closes()

	if defined := countDefined(closes); defined < r.window+1 {
		return nil, errors.NewInsufficientDataErrorf(r.window+1, defined, series.Symbol,
			"insufficient history for RSI: required %d closes, got %d", r.window+1, defined)
	}

	return types.IndicatorResult{
		types.ColumnRSI: r.computeRSI(closes),
	}, nil
}

// computeRSI runs Wilder's smoothing over the close-to-close deltas. Like the
// EMA recursion, a missing close leaves every later position undefined.
func (r *RSI) computeRSI(closes []float64) []float64 {
	out := undefinedColumn(len(closes))
	if len(closes) < r.window+1 {
		return out
	}

	avgGain := 0.0
	avgLoss := 0.0

	// Seed with the plain average of the first window deltas.
	for i := 1; i <= r.window; i++ {
		if math.IsNaN(closes[i]) || math.IsNaN(closes[i-1]) {
			return out
		}

		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss += -change
		}
	}

	avgGain /= float64(r.window)
	avgLoss /= float64(r.window)
	out[r.window] = rsiFromAverages(avgGain, avgLoss)

	// Subsequent averages use Wilder's smoothing method.
	for i := r.window + 1; i < len(closes); i++ {
		if math.IsNaN(closes[i]) {
			return out
		}

		change := closes[i] - closes[i-1]
		gain := 0.0
		loss := 0.0

		if change > 0 {
			gain = change
		} else {
			loss = -change
		}

		avgGain = (avgGain*float64(r.window-1) + gain) / float64(r.window)
		avgLoss = (avgLoss*float64(r.window-1) + loss) / float64(r.window)
		out[i] = rsiFromAverages(avgGain, avgLoss)
	}

	return out
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100 // Perfect uptrend
	}

	rs := avgGain / avgLoss

	return 100 - (100 / (1 + rs))
}
