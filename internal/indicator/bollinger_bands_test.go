package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/finsight-dev/finsight/internal/types"
	"github.com/finsight-dev/finsight/pkg/errors"
)

type BollingerBandsTestSuite struct {
	suite.Suite
}

func TestBollingerBandsSuite(t *testing.T) {
	suite.Run(t, new(BollingerBandsTestSuite))
}

func (suite *BollingerBandsTestSuite) TestNewBollingerBands() {
	bb, err := NewBollingerBands(BollingerConfig{Window: 20, Multiplier: 2.0, Enabled: true})
	suite.NoError(err)
	suite.Equal(types.IndicatorTypeBollingerBands, bb.Name())
	suite.Equal([]string{"BB_high", "BB_mid", "BB_low"}, bb.Columns())
}

func (suite *BollingerBandsTestSuite) TestNewBollingerBandsInvalidConfig() {
	_, err := NewBollingerBands(BollingerConfig{Window: 0, Multiplier: 2.0, Enabled: true})
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidMultiplier))

	_, err = NewBollingerBands(BollingerConfig{Window: 20, Multiplier: 0, Enabled: true})
	suite.Error(err)

	_, err = NewBollingerBands(BollingerConfig{Window: 20, Multiplier: -1.5, Enabled: true})
	suite.Error(err)
}

func (suite *BollingerBandsTestSuite) TestComputeBandOrdering() {
	closes := []float64{99.1, 101.3, 100.2, 98.7, 102.4, 101.8, 99.9, 103.2, 102.7, 100.5}

	bb, err := NewBollingerBands(BollingerConfig{Window: 4, Multiplier: 2.0, Enabled: true})
	suite.NoError(err)

	result, err := bb.Compute(seriesFromCloses("TEST", closes))
	suite.NoError(err)

	high := result["BB_high"]
	mid := result["BB_mid"]
	low := result["BB_low"]

	for i := range closes {
		if !types.IsDefined(mid[i]) {
			suite.False(types.IsDefined(high[i]))
			suite.False(types.IsDefined(low[i]))

			continue
		}

		suite.GreaterOrEqual(high[i], mid[i])
		suite.GreaterOrEqual(mid[i], low[i])
	}
}

func (suite *BollingerBandsTestSuite) TestComputeKnownValues() {
	// Constant closes: zero deviation collapses all three bands onto the mean.
	closes := []float64{50, 50, 50, 50, 50}

	bb, err := NewBollingerBands(BollingerConfig{Window: 3, Multiplier: 2.0, Enabled: true})
	suite.NoError(err)

	result, err := bb.Compute(seriesFromCloses("TEST", closes))
	suite.NoError(err)

	for i := 2; i < len(closes); i++ {
		suite.InDelta(50.0, result["BB_mid"][i], 1e-9)
		suite.InDelta(50.0, result["BB_high"][i], 1e-9)
		suite.InDelta(50.0, result["BB_low"][i], 1e-9)
	}
}

func (suite *BollingerBandsTestSuite) TestComputePopulationStdDev() {
	closes := []float64{2, 4, 6}

	bb, err := NewBollingerBands(BollingerConfig{Window: 3, Multiplier: 1.0, Enabled: true})
	suite.NoError(err)

	result, err := bb.Compute(seriesFromCloses("TEST", closes))
	suite.NoError(err)

	// Population stddev of {2,4,6} is sqrt(8/3).
	expected := math.Sqrt(8.0 / 3.0)
	suite.InDelta(4.0, result["BB_mid"][2], 1e-9)
	suite.InDelta(4.0+expected, result["BB_high"][2], 1e-9)
	suite.InDelta(4.0-expected, result["BB_low"][2], 1e-9)
}

func (suite *BollingerBandsTestSuite) TestComputeInsufficientHistory() {
	bb, err := NewBollingerBands(BollingerConfig{Window: 20, Multiplier: 2.0, Enabled: true})
	suite.NoError(err)

	_, err = bb.Compute(seriesFromCloses("TEST", []float64{100, 101, 102}))
	suite.Error(err)
	suite.True(errors.IsInsufficientDataError(err))
}
