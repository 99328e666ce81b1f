package marketdata

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type FundamentalsTestSuite struct {
	suite.Suite
}

func (suite *FundamentalsTestSuite) TestNormalizePercent() {
	// Zero means no dividend, not a ratio to scale.
	suite.Equal(0.0, NormalizePercent(0))
	// Ratios scale to percent.
	suite.InDelta(0.44, NormalizePercent(0.0044), 1e-9)
	suite.InDelta(99.0, NormalizePercent(0.99), 1e-9)
	// Values already on a percent scale pass through.
	suite.Equal(1.0, NormalizePercent(1.0))
	suite.Equal(4.2, NormalizePercent(4.2))
	suite.Equal(140.968, NormalizePercent(140.968))
	// Missing stays missing.
	suite.True(math.IsNaN(NormalizePercent(math.NaN())))
}

func (suite *FundamentalsTestSuite) TestFormatPercent() {
	suite.Equal("0.44%", FormatPercent(0.0044))
	suite.Equal("4.2%", FormatPercent(4.2))
	suite.Equal("-", FormatPercent(math.NaN()))
}

func (suite *FundamentalsTestSuite) TestFormatRatio() {
	suite.Equal("28.35", FormatRatio(28.3456))
	suite.Equal("-", FormatRatio(math.NaN()))
}

func (suite *FundamentalsTestSuite) TestFormatPrice() {
	suite.Equal("184.80", FormatPrice(184.8))
	suite.Equal("-", FormatPrice(math.NaN()))
}

func (suite *FundamentalsTestSuite) TestFormatMarketCap() {
	suite.Equal("2.95T", FormatMarketCap(2.95e12))
	suite.Equal("341.2B", FormatMarketCap(3.412e11))
	suite.Equal("980.5M", FormatMarketCap(9.805e8))
	suite.Equal("12.5K", FormatMarketCap(12500))
	suite.Equal("512", FormatMarketCap(512))
	suite.Equal("-", FormatMarketCap(math.NaN()))
	suite.Equal("-", FormatMarketCap(0))
}

func TestFundamentalsTestSuite(t *testing.T) {
	suite.Run(t, new(FundamentalsTestSuite))
}
