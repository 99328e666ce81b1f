package types

import (
	"fmt"
	"math"

	"github.com/moznion/go-optional"
)

type IndicatorType string

const (
	IndicatorTypeSMA            IndicatorType = "sma"
	IndicatorTypeEMA            IndicatorType = "ema"
	IndicatorTypeRSI            IndicatorType = "rsi"
	IndicatorTypeMACD           IndicatorType = "macd"
	IndicatorTypeBollingerBands IndicatorType = "bollinger_bands"
)

// Column names for indicator outputs. Window-parameterized families embed the
// window in the name (SMA20, EMA50); fixed families use stable constants.
const (
	ColumnRSI        = "RSI"
	ColumnMACDLine   = "MACD_line"
	ColumnMACDSignal = "MACD_signal"
	ColumnMACDHist   = "MACD_hist"
	ColumnBBHigh     = "BB_high"
	ColumnBBMid      = "BB_mid"
	ColumnBBLow      = "BB_low"
)

// SMAColumn returns the column name for a simple moving average of the given window.
func SMAColumn(window int) string {
	return fmt.Sprintf("SMA%d", window)
}

// EMAColumn returns the column name for an exponential moving average of the given window.
func EMAColumn(window int) string {
	return fmt.Sprintf("EMA%d", window)
}

// Undefined is the sentinel for an indicator position whose lookback window
// has not accumulated enough observations.
func Undefined() float64 {
	return math.NaN()
}

// IsDefined reports whether an indicator value is defined at a position.
func IsDefined(v float64) bool {
	return !math.IsNaN(v)
}

// IndicatorResult maps column names to value sequences aligned index-for-index
// with the source series' timestamps. A family whose required window exceeds
// the available history is absent from the map entirely; callers must check
// key presence before use.
type IndicatorResult map[string][]float64

// Has reports whether the column is present in the result.
func (r IndicatorResult) Has(column string) bool {
	_, ok := r[column]

	return ok
}

// Column returns the value sequence for a column, or None when the family was
// omitted for insufficient history.
func (r IndicatorResult) Column(column string) optional.Option[[]float64] {
	values, ok := r[column]
	if !ok {
		return optional.None[[]float64]()
	}

	return optional.Some(values)
}

// LastDefined returns the most recent defined value of a column, scanning
// backwards past any trailing undefined positions.
func (r IndicatorResult) LastDefined(column string) optional.Option[float64] {
	values, ok := r[column]
	if !ok {
		return optional.None[float64]()
	}

	for i := len(values) - 1; i >= 0; i-- {
		if IsDefined(values[i]) {
			return optional.Some(values[i])
		}
	}

	return optional.None[float64]()
}

// Merge copies all columns from other into r. Column names are globally
// unique across families, so collisions only happen when the same family is
// computed twice with identical configuration, in which case the values are
// identical too.
func (r IndicatorResult) Merge(other IndicatorResult) {
	for column, values := range other {
		r[column] = values
	}
}
