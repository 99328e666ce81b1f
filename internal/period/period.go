// Package period slices a price series to a caller-selected trailing window.
package period

import (
	"sort"
	"time"

	"github.com/finsight-dev/finsight/internal/types"
	"github.com/finsight-dev/finsight/pkg/errors"
)

// Period is a named trailing display window.
type Period string

const (
	Period1Month  Period = "1mo"
	Period3Month  Period = "3mo"
	Period6Month  Period = "6mo"
	PeriodYTD     Period = "ytd"
	Period1Year   Period = "1y"
	Period2Year   Period = "2y"
	Period5Year   Period = "5y"
	PeriodAll     Period = "all"
	PeriodDefault        = Period2Year
)

// dayOffsets maps fixed-duration selectors to calendar-day lookbacks.
var dayOffsets = map[Period]int{
	Period1Month: 30,
	Period3Month: 90,
	Period6Month: 180,
	Period1Year:  365,
	Period2Year:  730,
	Period5Year:  1825,
}

// Periods lists every selector in display order.
func Periods() []Period {
	return []Period{
		Period1Month, Period3Month, Period6Month, PeriodYTD,
		Period1Year, Period2Year, Period5Year, PeriodAll,
	}
}

// Parse resolves a selector string to a Period.
func Parse(s string) (Period, error) {
	for _, p := range Periods() {
		if string(p) == s {
			return p, nil
		}
	}

	return "", errors.Newf(errors.ErrCodeInvalidPeriod, "unknown period selector %q", s)
}

// Label returns a human-readable name for the selector.
func (p Period) Label() string {
	switch p {
	case Period1Month:
		return "1 month"
	case Period3Month:
		return "3 months"
	case Period6Month:
		return "6 months"
	case PeriodYTD:
		return "year to date"
	case Period1Year:
		return "1 year"
	case Period2Year:
		return "2 years"
	case Period5Year:
		return "5 years"
	case PeriodAll:
		return "all history"
	default:
		return string(p)
	}
}

// Next cycles to the following selector, wrapping after "all".
func (p Period) Next() Period {
	periods := Periods()
	for i, candidate := range periods {
		if candidate == p {
			return periods[(i+1)%len(periods)]
		}
	}

	return PeriodDefault
}

// Filter returns the sub-series of bars whose timestamps fall within
// [start, now], where start is derived from the selector in the series'
// timezone. A series without a timezone association is returned unchanged:
// date-range arithmetic on it would be guesswork, so the caller surfaces a
// degraded-precision warning instead. An empty result is a valid empty
// series, never an error.
func Filter(series *types.Series, p Period, now time.Time) *types.Series {
	if !series.HasLocation() {
		return series
	}

	if series.IsEmpty() || p == PeriodAll {
		return series
	}

	end := now.In(series.Location)

	var start time.Time

	if p == PeriodYTD {
		start = time.Date(end.Year(), time.January, 1, 0, 0, 0, 0, series.Location)
	} else {
		days, ok := dayOffsets[p]
		if !ok {
			return series
		}

		start = end.AddDate(0, 0, -days)
	}

	bars := series.Bars
	from := sort.Search(len(bars), func(i int) bool { return !bars[i].Time.Before(start) })
	to := sort.Search(len(bars), func(i int) bool { return bars[i].Time.After(end) })

	if from >= to {
		return types.EmptySeries(series.Symbol, series.Location)
	}

	return series.Slice(from, to)
}
