package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/finsight-dev/finsight/internal/types"
	"github.com/finsight-dev/finsight/pkg/errors"
)

type EMATestSuite struct {
	suite.Suite
}

func TestEMASuite(t *testing.T) {
	suite.Run(t, new(EMATestSuite))
}

func (suite *EMATestSuite) TestNewEMA() {
	ema, err := NewEMA(WindowConfig{Window: 50, Enabled: true})
	suite.NoError(err)
	suite.Equal(types.IndicatorTypeEMA, ema.Name())
	suite.Equal([]string{"EMA50"}, ema.Columns())
}

func (suite *EMATestSuite) TestNewEMAInvalidWindow() {
	_, err := NewEMA(WindowConfig{Window: 0, Enabled: true})
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidWindow))
}

func (suite *EMATestSuite) TestComputeSeedAndRecursion() {
	// Window 3 gives alpha 0.5, so a 1..10 ramp produces integer outputs:
	// seed mean(1,2,3)=2, then each step lands exactly one behind the close.
	closes := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	ema, err := NewEMA(WindowConfig{Window: 3, Enabled: true})
	suite.NoError(err)

	result, err := ema.Compute(seriesFromCloses("TEST", closes))
	suite.NoError(err)

	column := result["EMA3"]
	suite.False(types.IsDefined(column[0]))
	suite.False(types.IsDefined(column[1]))

	for i := 2; i < len(closes); i++ {
		suite.InDelta(float64(i), column[i], 1e-9)
	}
}

func (suite *EMATestSuite) TestComputeDeterministic() {
	closes := []float64{104.2, 101.9, 103.3, 106.8, 105.1, 107.4, 109.0, 108.2, 110.6, 111.3}

	ema, err := NewEMA(WindowConfig{Window: 4, Enabled: true})
	suite.NoError(err)

	series := seriesFromCloses("TEST", closes)

	first, err := ema.Compute(series)
	suite.NoError(err)

	second, err := ema.Compute(series)
	suite.NoError(err)

	// Bit-identical, not merely approximately equal.
	for i := range closes {
		if types.IsDefined(first["EMA4"][i]) {
			suite.Equal(first["EMA4"][i], second["EMA4"][i])
		} else {
			suite.False(types.IsDefined(second["EMA4"][i]))
		}
	}
}

func (suite *EMATestSuite) TestComputeInsufficientHistory() {
	ema, err := NewEMA(WindowConfig{Window: 10, Enabled: true})
	suite.NoError(err)

	_, err = ema.Compute(seriesFromCloses("TEST", []float64{10, 11, 12}))
	suite.Error(err)
	suite.True(errors.IsInsufficientDataError(err))
}

func (suite *EMATestSuite) TestComputeMissingClosePoisonsRecursion() {
	closes := []float64{1, 2, 3, 4, types.Undefined(), 6, 7, 8}

	ema, err := NewEMA(WindowConfig{Window: 3, Enabled: true})
	suite.NoError(err)

	result, err := ema.Compute(seriesFromCloses("TEST", closes))
	suite.NoError(err)

	column := result["EMA3"]
	suite.True(types.IsDefined(column[2]))
	suite.True(types.IsDefined(column[3]))

	// Every position recursing through the gap is undefined.
	for i := 4; i < len(closes); i++ {
		suite.False(types.IsDefined(column[i]))
	}
}
