package types

import (
	"math"
	"time"

	"github.com/finsight-dev/finsight/pkg/errors"
)

// Series is an ordered sequence of bars for one symbol over a bounded
// historical window. It is immutable once constructed; every derived view
// (period slices, indicator columns) is produced as a new value.
//
// Location carries the exchange timezone the timestamps belong to. A nil
// Location means the upstream provider gave no timezone association; date
// range arithmetic must be skipped for such a series.
type Series struct {
	Symbol   string
	Location *time.Location
	Bars     []Bar
}

// NewSeries validates the bars and wraps them into a Series.
// Timestamps must be strictly increasing; highs/lows/opens must be finite;
// volume must be non-negative. A NaN close is allowed and marks a missing
// observation.
func NewSeries(symbol string, location *time.Location, bars []Bar) (*Series, error) {
	for i, bar := range bars {
		if i > 0 && !bars[i-1].Time.Before(bar.Time) {
			return nil, errors.Newf(errors.ErrCodeInvalidSeries,
				"bar %d timestamp %s is not after previous bar %s", i, bar.Time, bars[i-1].Time)
		}

		if math.IsNaN(bar.Open) || math.IsInf(bar.Open, 0) ||
			math.IsNaN(bar.High) || math.IsInf(bar.High, 0) ||
			math.IsNaN(bar.Low) || math.IsInf(bar.Low, 0) ||
			math.IsInf(bar.Close, 0) {
			return nil, errors.Newf(errors.ErrCodeInvalidSeries, "bar %d at %s has non-finite OHLC values", i, bar.Time)
		}

		if bar.Volume < 0 {
			return nil, errors.Newf(errors.ErrCodeInvalidSeries, "bar %d at %s has negative volume %f", i, bar.Time, bar.Volume)
		}
	}

	return &Series{
		Symbol:   symbol,
		Location: location,
		Bars:     bars,
	}, nil
}

// EmptySeries returns a valid zero-bar series for the symbol. An empty series
// is a displayable state, not an error.
func EmptySeries(symbol string, location *time.Location) *Series {
	return &Series{
		Symbol:   symbol,
		Location: location,
		Bars:     nil,
	}
}

// Len returns the number of bars.
func (s *Series) Len() int {
	return len(s.Bars)
}

// IsEmpty reports whether the series has no bars.
func (s *Series) IsEmpty() bool {
	return len(s.Bars) == 0
}

// HasLocation reports whether the series carries a timezone association.
func (s *Series) HasLocation() bool {
	return s.Location != nil
}

// Closes returns the closing price column. The slice is freshly allocated so
// callers cannot mutate the series through it.
func (s *Series) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, bar := range s.Bars {
		closes[i] = bar.Close
	}

	return closes
}

// Times returns the timestamp column.
func (s *Series) Times() []time.Time {
	times := make([]time.Time, len(s.Bars))
	for i, bar := range s.Bars {
		times[i] = bar.Time
	}

	return times
}

// First returns the oldest bar. Only valid on a non-empty series.
func (s *Series) First() Bar {
	return s.Bars[0]
}

// Last returns the most recent bar. Only valid on a non-empty series.
func (s *Series) Last() Bar {
	return s.Bars[len(s.Bars)-1]
}

// Slice returns a sub-series covering bars [from, to). The bars are shared
// with the parent, which is safe because series are never mutated.
func (s *Series) Slice(from, to int) *Series {
	return &Series{
		Symbol:   s.Symbol,
		Location: s.Location,
		Bars:     s.Bars[from:to],
	}
}
