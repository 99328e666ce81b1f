package types

import (
	"math"
	"time"
)

// Bar is a single OHLCV observation for one trading period.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// HasClose reports whether the bar carries a usable closing price.
// A NaN close marks a missing observation inside the series.
func (b Bar) HasClose() bool {
	return !math.IsNaN(b.Close)
}
