package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-kline/internal/types"
	"github.com/rxtech-lab/argo-kline/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type RSIUnitTestSuite struct {
	suite.Suite
}

func TestRSIUnitSuite(t *testing.T) {
	suite.Run(t, new(RSIUnitTestSuite))
}

func (suite *RSIUnitTestSuite) TestNewRSI() {
	rsi := NewRSI().(*RSI)
	suite.Equal([]int{14}, rsi.Periods())
	suite.Equal(types.IndicatorTypeRSI, rsi.Name())
	suite.Equal(15, rsi.Lookback())
}

func (suite *RSIUnitTestSuite) TestConfig() {
	rsi := NewRSI()

	suite.NoError(rsi.Config(6, 12, 24))
	suite.Equal(25, rsi.Lookback())

	suite.True(errors.HasCode(rsi.Config(), errors.ErrCodeMissingParameter))
	suite.True(errors.HasCode(rsi.Config(-3), errors.ErrCodeInvalidPeriod))
}

func (suite *RSIUnitTestSuite) run(rsi Indicator, bars []types.Bar) []types.Indicators {
	var prev State

	outs := make([]types.Indicators, len(bars))
	for i := range bars {
		next := prev.Clone()
		rsi.Compute(bars, i, &prev, &next, &outs[i])
		next.HasClose = true
		next.LastClose = bars[i].Close
		prev = next
	}

	return outs
}

func (suite *RSIUnitTestSuite) TestNeedsPeriodPlusOneBars() {
	rsi := NewRSI()
	suite.Require().NoError(rsi.Config(3))

	outs := suite.run(rsi, closesToBars(10, 11, 10, 12, 13))

	for i := 0; i < 3; i++ {
		suite.True(outs[i].RSI[0].IsNone(), "bar %d", i)
	}

	// first value: mean gain (1+0+2)/3, mean loss (0+1+0)/3
	suite.InDelta(100-100/(1+3.0), outs[3].RSI[0].Unwrap(), 1e-9)

	// wilder step: gain 1, loss 0
	avgGain := (1.0*2 + 1) / 3
	avgLoss := (1.0 / 3 * 2) / 3
	suite.InDelta(100-100/(1+avgGain/avgLoss), outs[4].RSI[0].Unwrap(), 1e-9)
}

func (suite *RSIUnitTestSuite) TestNoLossesIsHundred() {
	rsi := NewRSI()
	suite.Require().NoError(rsi.Config(2))

	outs := suite.run(rsi, closesToBars(1, 2, 3, 4))
	suite.Equal(100.0, outs[2].RSI[0].Unwrap())
	suite.Equal(100.0, outs[3].RSI[0].Unwrap())
}
