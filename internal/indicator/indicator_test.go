package indicator

import (
	"math"
	"time"

	"github.com/finsight-dev/finsight/internal/types"
)

// seriesFromCloses builds a daily UTC series whose closes are the given
// values. A NaN close marks a missing observation; the bar's other fields
// stay finite so the series itself remains valid.
func seriesFromCloses(symbol string, closes []float64) *types.Series {
	bars := make([]types.Bar, len(closes))
	start := time.Date(2024, 1, 2, 16, 0, 0, 0, time.UTC)

	for i, close := range closes {
		price := close
		if math.IsNaN(price) {
			price = 1.0
		}

		bars[i] = types.Bar{
			Time:   start.AddDate(0, 0, i),
			Open:   price,
			High:   price,
			Low:    price,
			Close:  close,
			Volume: 1000,
		}
	}

	series, err := types.NewSeries(symbol, time.UTC, bars)
	if err != nil {
		panic(err)
	}

	return series
}

// definedCount returns the number of defined positions in a column.
func definedCount(column []float64) int {
	count := 0

	for _, v := range column {
		if types.IsDefined(v) {
			count++
		}
	}

	return count
}
