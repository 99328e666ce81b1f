package types

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/finsight-dev/finsight/pkg/errors"
)

type SeriesTestSuite struct {
	suite.Suite
}

func (suite *SeriesTestSuite) bars(closes ...float64) []Bar {
	bars := make([]Bar, len(closes))
	start := time.Date(2024, 1, 2, 16, 0, 0, 0, time.UTC)
	for i, c := range closes {
		open := c
		if math.IsNaN(c) {
			open = 1.0
		}
		bars[i] = Bar{
			Time:   start.AddDate(0, 0, i),
			Open:   open,
			High:   open,
			Low:    open,
			Close:  c,
			Volume: 1000,
		}
	}

	return bars
}

func (suite *SeriesTestSuite) TestNewSeriesValid() {
	series, err := NewSeries("AAPL", time.UTC, suite.bars(10, 11, 12))
	suite.Require().NoError(err)
	suite.Equal("AAPL", series.Symbol)
	suite.Equal(3, series.Len())
	suite.False(series.IsEmpty())
	suite.True(series.HasLocation())
}

func (suite *SeriesTestSuite) TestNewSeriesEmptyIsValid() {
	series, err := NewSeries("AAPL", time.UTC, nil)
	suite.Require().NoError(err)
	suite.True(series.IsEmpty())
}

func (suite *SeriesTestSuite) TestNewSeriesRejectsUnorderedTimestamps() {
	bars := suite.bars(10, 11, 12)
	bars[2].Time = bars[0].Time

	_, err := NewSeries("AAPL", time.UTC, bars)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidSeries))
}

func (suite *SeriesTestSuite) TestNewSeriesRejectsDuplicateTimestamps() {
	bars := suite.bars(10, 11)
	bars[1].Time = bars[0].Time

	_, err := NewSeries("AAPL", time.UTC, bars)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidSeries))
}

func (suite *SeriesTestSuite) TestNewSeriesRejectsNonFiniteOHLC() {
	for _, mutate := range []func(*Bar){
		func(b *Bar) { b.Open = math.NaN() },
		func(b *Bar) { b.High = math.Inf(1) },
		func(b *Bar) { b.Low = math.NaN() },
		func(b *Bar) { b.Close = math.Inf(-1) },
	} {
		bars := suite.bars(10, 11)
		mutate(&bars[1])

		_, err := NewSeries("AAPL", time.UTC, bars)
		suite.Require().Error(err)
		suite.True(errors.HasCode(err, errors.ErrCodeInvalidSeries))
	}
}

func (suite *SeriesTestSuite) TestNewSeriesAllowsNaNClose() {
	series, err := NewSeries("AAPL", time.UTC, suite.bars(10, math.NaN(), 12))
	suite.Require().NoError(err)
	suite.False(series.Bars[1].HasClose())
	suite.True(series.Bars[2].HasClose())
}

func (suite *SeriesTestSuite) TestNewSeriesRejectsNegativeVolume() {
	bars := suite.bars(10, 11)
	bars[0].Volume = -1

	_, err := NewSeries("AAPL", time.UTC, bars)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidSeries))
}

func (suite *SeriesTestSuite) TestNilLocation() {
	series, err := NewSeries("AAPL", nil, suite.bars(10))
	suite.Require().NoError(err)
	suite.False(series.HasLocation())
}

func (suite *SeriesTestSuite) TestCloses() {
	series, err := NewSeries("AAPL", time.UTC, suite.bars(10, 11, 12))
	suite.Require().NoError(err)

	closes := series.Closes()
	suite.Equal([]float64{10, 11, 12}, closes)

	closes[0] = 999
	suite.Equal(10.0, series.Bars[0].Close)
}

func (suite *SeriesTestSuite) TestFirstLastSlice() {
	series, err := NewSeries("AAPL", time.UTC, suite.bars(10, 11, 12, 13))
	suite.Require().NoError(err)

	suite.Equal(10.0, series.First().Close)
	suite.Equal(13.0, series.Last().Close)

	sub := series.Slice(1, 3)
	suite.Equal("AAPL", sub.Symbol)
	suite.Equal(2, sub.Len())
	suite.Equal(11.0, sub.First().Close)
	suite.Equal(12.0, sub.Last().Close)
}

func TestSeriesTestSuite(t *testing.T) {
	suite.Run(t, new(SeriesTestSuite))
}
