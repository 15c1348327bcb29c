package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-kline/internal/types"
	"github.com/rxtech-lab/argo-kline/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type MAUnitTestSuite struct {
	suite.Suite
}

func TestMAUnitSuite(t *testing.T) {
	suite.Run(t, new(MAUnitTestSuite))
}

func (suite *MAUnitTestSuite) TestNewMA() {
	ma := NewMA()
	suite.NotNil(ma)

	maImpl := ma.(*MA)
	suite.Equal([]int{5, 10, 20, 30, 60}, maImpl.Periods())
	suite.Equal(60, ma.Lookback())
}

func (suite *MAUnitTestSuite) TestName() {
	suite.Equal(types.IndicatorTypeMA, NewMA().Name())
	suite.Equal(types.IndicatorTypeVolumeMA, NewVolumeMA().Name())
}

func (suite *MAUnitTestSuite) TestConfigValid() {
	ma := NewMA()
	maImpl := ma.(*MA)

	err := ma.Config(3, 7)
	suite.NoError(err)
	suite.Equal([]int{3, 7}, maImpl.periods)

	err = ma.Config([]int{4})
	suite.NoError(err)
	suite.Equal([]int{4}, maImpl.periods)
}

func (suite *MAUnitTestSuite) TestConfigWithFloat64() {
	ma := NewMA()
	maImpl := ma.(*MA)

	err := ma.Config(15.0)
	suite.NoError(err)
	suite.Equal([]int{15}, maImpl.periods)

	err = ma.Config(2.5)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidType))
}

func (suite *MAUnitTestSuite) TestConfigInvalid() {
	ma := NewMA()

	err := ma.Config()
	suite.True(errors.HasCode(err, errors.ErrCodeMissingParameter))

	err = ma.Config(0)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))

	err = ma.Config(5, -1)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))

	err = ma.Config("5")
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidType))
}

func (suite *MAUnitTestSuite) TestComputeThreeBarScenario() {
	ma := NewMA()
	suite.Require().NoError(ma.Config(3))

	bars := closesToBars(10, 12, 11)

	var out types.Indicators
	for i := range bars {
		out = types.Indicators{}
		ma.Compute(bars, i, &State{}, &State{}, &out)

		if i < 2 {
			suite.True(out.MA[0].IsNone(), "bar %d", i)
		}
	}

	suite.InDelta(11.0, out.MA[0].Unwrap(), 1e-12)
}

func (suite *MAUnitTestSuite) TestVolumeMAUsesVolume() {
	ma := NewVolumeMA()
	suite.Require().NoError(ma.Config(2))

	bars := closesToBars(1, 2)
	bars[0].Volume = 10
	bars[1].Volume = 30

	var out types.Indicators
	ma.Compute(bars, 1, &State{}, &State{}, &out)

	suite.Nil(out.MA)
	suite.InDelta(20.0, out.VolumeMA[0].Unwrap(), 1e-12)
}
