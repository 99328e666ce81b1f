package indicator

import (
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/finsight-dev/finsight/internal/types"
)

// Indicator is a windowed numeric transform over the closing-price column of
// a series. Implementations are pure: computing the same indicator twice over
// the same series yields bit-identical output.
type Indicator interface {
	// Name returns the indicator family name.
	Name() types.IndicatorType
	// Columns returns the output column names this indicator produces.
	Columns() []string
	// MinObservations returns the number of non-missing closes the series
	// must contain before the family produces any output at all.
	MinObservations() int
	// Compute derives the indicator columns, aligned index-for-index with
	// the series' timestamps. When the series holds fewer non-missing closes
	// than MinObservations, Compute returns an InsufficientDataError and the
	// caller omits the family from the result.
	Compute(series *types.Series) (types.IndicatorResult, error)
}

// validate is shared by all indicator constructors.
var validate = validator.New()

// undefinedColumn allocates a column of n undefined positions.
func undefinedColumn(n int) []float64 {
	column := make([]float64, n)
	for i := range column {
		column[i] = types.Undefined()
	}

	return column
}

// countDefined returns the number of non-missing closes.
func countDefined(closes []float64) int {
	count := 0

	for _, c := range closes {
		if !math.IsNaN(c) {
			count++
		}
	}

	return count
}

// computeSMA returns the trailing arithmetic mean over the given window.
// A position is defined once the window is full and covers no missing close.
func computeSMA(closes []float64, window int) []float64 {
	out := undefinedColumn(len(closes))

	for i := window - 1; i < len(closes); i++ {
		sum := 0.0
		defined := true

		for j := i - window + 1; j <= i; j++ {
			if math.IsNaN(closes[j]) {
				defined = false
				break
			}

			sum += closes[j]
		}

		if defined {
			out[i] = sum / float64(window)
		}
	}

	return out
}

// computeEMA returns the exponential moving average seeded with the SMA of
// the first window closes and recursed forward with alpha = 2/(window+1).
// Because every later value depends on the recursion, a missing close leaves
// all positions from that point on undefined.
func computeEMA(closes []float64, window int) []float64 {
	out := undefinedColumn(len(closes))
	if len(closes) < window {
		return out
	}

	seed := 0.0

	for i := 0; i < window; i++ {
		if math.IsNaN(closes[i]) {
			return out
		}

		seed += closes[i]
	}

	// Use alpha = 2/(window+1) to match pandas ewm with adjust=False
	alpha := 2.0 / float64(window+1)
	ema := seed / float64(window)
	out[window-1] = ema

	for i := window; i < len(closes); i++ {
		if math.IsNaN(closes[i]) {
			return out
		}

		ema = (closes[i] * alpha) + (ema * (1 - alpha))
		out[i] = ema
	}

	return out
}

// computeEMAOver runs the same recursion over a column that may lead with
// undefined positions, such as a MACD line. The recursion starts at the first
// defined value and stops at the first undefined value after it.
func computeEMAOver(values []float64, window int) []float64 {
	out := undefinedColumn(len(values))

	start := -1

	for i, v := range values {
		if !math.IsNaN(v) {
			start = i
			break
		}
	}

	if start < 0 || len(values)-start < window {
		return out
	}

	seed := 0.0

	for i := start; i < start+window; i++ {
		if math.IsNaN(values[i]) {
			return out
		}

		seed += values[i]
	}

	alpha := 2.0 / float64(window+1)
	ema := seed / float64(window)
	out[start+window-1] = ema

	for i := start + window; i < len(values); i++ {
		if math.IsNaN(values[i]) {
			return out
		}

		ema = (values[i] * alpha) + (ema * (1 - alpha))
		out[i] = ema
	}

	return out
}
