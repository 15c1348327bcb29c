package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-kline/internal/types"
	"github.com/rxtech-lab/argo-kline/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type KDJUnitTestSuite struct {
	suite.Suite
}

func TestKDJUnitSuite(t *testing.T) {
	suite.Run(t, new(KDJUnitTestSuite))
}

func (suite *KDJUnitTestSuite) TestConfig() {
	kdj := NewKDJ()
	suite.Equal(types.IndicatorTypeKDJ, kdj.Name())
	suite.Equal(9, kdj.Lookback())

	suite.NoError(kdj.Config(5, 3, 3))
	suite.Equal(5, kdj.Lookback())

	suite.True(errors.HasCode(kdj.Config(5, 3), errors.ErrCodeMissingParameter))
	suite.True(errors.HasCode(kdj.Config(5, 0, 3), errors.ErrCodeInvalidPeriod))
}

func (suite *KDJUnitTestSuite) run(kdj Indicator, bars []types.Bar) []types.Indicators {
	var prev State

	outs := make([]types.Indicators, len(bars))
	for i := range bars {
		next := prev.Clone()
		kdj.Compute(bars, i, &prev, &next, &outs[i])
		prev = next
	}

	return outs
}

func (suite *KDJUnitTestSuite) TestSeededAtFifty() {
	kdj := NewKDJ()
	suite.Require().NoError(kdj.Config(3, 3, 3))

	bars := closesToBars(10, 10, 10, 10)
	bars[0].High, bars[0].Low = 12, 8
	bars[1].High, bars[1].Low = 14, 9
	bars[2].High, bars[2].Low, bars[2].Close = 13, 10, 13

	outs := suite.run(kdj, bars)
	suite.True(outs[0].KDJ.IsNone())
	suite.True(outs[1].KDJ.IsNone())

	// HH 14, LL 8, RSV = (13-8)/6*100
	rsv := 5.0 / 6 * 100
	k := (2*50 + rsv) / 3
	d := (2*50 + k) / 3
	got := outs[2].KDJ.Unwrap()
	suite.InDelta(k, got.K, 1e-9)
	suite.InDelta(d, got.D, 1e-9)
	suite.InDelta(3*k-2*d, got.J, 1e-9)
}

func (suite *KDJUnitTestSuite) TestFlatWindowUsesNeutralRSV() {
	kdj := NewKDJ()
	suite.Require().NoError(kdj.Config(2, 3, 3))

	outs := suite.run(kdj, closesToBars(5, 5, 5))
	suite.Equal(types.KDJ{K: 50, D: 50, J: 50}, outs[1].KDJ.Unwrap())
	suite.Equal(types.KDJ{K: 50, D: 50, J: 50}, outs[2].KDJ.Unwrap())
}
