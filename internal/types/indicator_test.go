package types

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type IndicatorResultTestSuite struct {
	suite.Suite
}

func (suite *IndicatorResultTestSuite) TestColumnNames() {
	suite.Equal("SMA20", SMAColumn(20))
	suite.Equal("EMA50", EMAColumn(50))
}

func (suite *IndicatorResultTestSuite) TestUndefinedSentinel() {
	suite.False(IsDefined(Undefined()))
	suite.True(IsDefined(0))
	suite.True(IsDefined(-12.5))
}

func (suite *IndicatorResultTestSuite) TestHasAndColumn() {
	result := IndicatorResult{ColumnRSI: {Undefined(), 50, 60}}

	suite.True(result.Has(ColumnRSI))
	suite.False(result.Has(ColumnMACDLine))

	values, err := result.Column(ColumnRSI).Take()
	suite.Require().NoError(err)
	suite.Len(values, 3)

	suite.True(result.Column(ColumnMACDLine).IsNone())
}

func (suite *IndicatorResultTestSuite) TestLastDefinedSkipsTrailingUndefined() {
	result := IndicatorResult{
		ColumnRSI: {Undefined(), 42.5, Undefined(), Undefined()},
	}

	last, err := result.LastDefined(ColumnRSI).Take()
	suite.Require().NoError(err)
	suite.Equal(42.5, last)
}

func (suite *IndicatorResultTestSuite) TestLastDefinedNone() {
	result := IndicatorResult{
		ColumnRSI: {Undefined(), Undefined()},
	}

	suite.True(result.LastDefined(ColumnRSI).IsNone())
	suite.True(result.LastDefined(ColumnMACDLine).IsNone())
}

func (suite *IndicatorResultTestSuite) TestMerge() {
	result := IndicatorResult{SMAColumn(20): {10, 11}}
	result.Merge(IndicatorResult{
		ColumnRSI:      {Undefined(), 55},
		ColumnMACDLine: {0.1, 0.2},
	})

	suite.Len(result, 3)
	suite.True(result.Has(SMAColumn(20)))
	suite.True(result.Has(ColumnRSI))
	suite.True(result.Has(ColumnMACDLine))
}

func TestIndicatorResultTestSuite(t *testing.T) {
	suite.Run(t, new(IndicatorResultTestSuite))
}
