package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-kline/internal/types"
	"github.com/rxtech-lab/argo-kline/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type BollingerBandsUnitTestSuite struct {
	suite.Suite
}

func TestBollingerBandsUnitSuite(t *testing.T) {
	suite.Run(t, new(BollingerBandsUnitTestSuite))
}

func (suite *BollingerBandsUnitTestSuite) TestDefaults() {
	bb := NewBollingerBands().(*BollingerBands)
	suite.Equal(20, bb.period)
	suite.Equal(2.0, bb.multiplier)
	suite.Equal(types.IndicatorTypeBOLL, bb.Name())
}

func (suite *BollingerBandsUnitTestSuite) TestConfig() {
	bb := NewBollingerBands()

	suite.NoError(bb.Config(10, 1.5))
	suite.NoError(bb.Config(10, 2))

	suite.True(errors.HasCode(bb.Config(10), errors.ErrCodeMissingParameter))
	suite.True(errors.HasCode(bb.Config(0, 2.0), errors.ErrCodeInvalidPeriod))
	suite.True(errors.HasCode(bb.Config(10, -1.0), errors.ErrCodeInvalidMultiplier))
	suite.True(errors.HasCode(bb.Config(10, math.NaN()), errors.ErrCodeInvalidMultiplier))
	suite.True(errors.HasCode(bb.Config(10, "2"), errors.ErrCodeInvalidType))
}

func (suite *BollingerBandsUnitTestSuite) TestPopulationStddev() {
	bb := NewBollingerBands()
	suite.Require().NoError(bb.Config(4, 2.0))

	bars := closesToBars(2, 4, 4, 6)

	var out types.Indicators
	bb.Compute(bars, 2, &State{}, &State{}, &out)
	suite.True(out.BOLL.IsNone())

	bb.Compute(bars, 3, &State{}, &State{}, &out)

	// mean 4, squared deviations 4+0+0+4, population variance 2
	sigma := math.Sqrt(2)
	boll := out.BOLL.Unwrap()
	suite.InDelta(4.0, boll.Mid, 1e-12)
	suite.InDelta(4+2*sigma, boll.Up, 1e-12)
	suite.InDelta(4-2*sigma, boll.Down, 1e-12)
}
