package types

import (
	"testing"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"
)

type IndicatorTestSuite struct {
	suite.Suite
}

func TestIndicatorSuite(t *testing.T) {
	suite.Run(t, new(IndicatorTestSuite))
}

func (suite *IndicatorTestSuite) TestIndicatorTypeConstants() {
	suite.Equal(IndicatorType("ma"), IndicatorTypeMA)
	suite.Equal(IndicatorType("volume_ma"), IndicatorTypeVolumeMA)
	suite.Equal(IndicatorType("boll"), IndicatorTypeBOLL)
	suite.Equal(IndicatorType("macd"), IndicatorTypeMACD)
	suite.Equal(IndicatorType("kdj"), IndicatorTypeKDJ)
	suite.Equal(IndicatorType("rsi"), IndicatorTypeRSI)
	suite.Equal(IndicatorType("wr"), IndicatorTypeWR)
	suite.Len(AllIndicatorTypes, 7)
}

func (suite *IndicatorTestSuite) TestHasOnEmptyIndicators() {
	var ind Indicators

	for _, t := range AllIndicatorTypes {
		suite.False(ind.Has(t), string(t))
	}

	suite.False(ind.Has(IndicatorTypeNone))
}

func (suite *IndicatorTestSuite) TestHasOnPopulatedIndicators() {
	ind := Indicators{
		MA:       []optional.Option[float64]{optional.None[float64]()},
		VolumeMA: []optional.Option[float64]{optional.Some(1.0)},
		BOLL:     optional.Some(BOLL{Up: 3, Mid: 2, Down: 1}),
		MACD:     optional.Some(MACD{}),
		KDJ:      optional.Some(KDJ{K: 50, D: 50, J: 50}),
		RSI:      []optional.Option[float64]{optional.Some(70.0)},
		WR:       []optional.Option[float64]{optional.Some(-20.0)},
	}

	for _, t := range AllIndicatorTypes {
		suite.True(ind.Has(t), string(t))
	}
}

func (suite *IndicatorTestSuite) TestCloneIsDeep() {
	ind := Indicators{
		MA:  []optional.Option[float64]{optional.Some(1.0), optional.Some(2.0)},
		RSI: []optional.Option[float64]{optional.Some(40.0)},
	}

	cloned := ind.Clone()
	cloned.MA[0] = optional.Some(99.0)
	cloned.RSI[0] = optional.None[float64]()

	suite.Equal(1.0, ind.MA[0].Unwrap())
	suite.Equal(40.0, ind.RSI[0].Unwrap())
	suite.Nil(Indicators{}.Clone().MA)
}

func (suite *IndicatorTestSuite) TestMergeGroupKeepsAbsentEntries() {
	dst := Indicators{
		MA:   []optional.Option[float64]{optional.Some(1.0), optional.Some(2.0)},
		MACD: optional.Some(MACD{Dif: 1}),
	}
	src := Indicators{
		MA: []optional.Option[float64]{optional.None[float64](), optional.Some(5.0)},
		WR: []optional.Option[float64]{optional.Some(9.0)},
	}

	dst.MergeGroup(IndicatorTypeMA, src)
	dst.MergeGroup(IndicatorTypeMACD, src)
	dst.MergeGroup(IndicatorTypeWR, src)

	suite.Equal([]optional.Option[float64]{optional.Some(1.0), optional.Some(5.0)}, dst.MA)
	suite.Equal(MACD{Dif: 1}, dst.MACD.Unwrap())
	// a slice of another length is not merged
	suite.Empty(dst.WR)
}

func (suite *IndicatorTestSuite) TestCopyGroup() {
	src := Indicators{
		MA:   []optional.Option[float64]{optional.Some(5.0)},
		MACD: optional.Some(MACD{Dif: 1, Dea: 0.5, Macd: 1}),
	}

	var dst Indicators
	dst.CopyGroup(IndicatorTypeMA, src)
	dst.CopyGroup(IndicatorTypeMACD, src)
	dst.CopyGroup(IndicatorTypeKDJ, src)

	suite.Equal(5.0, dst.MA[0].Unwrap())
	suite.Equal(0.5, dst.MACD.Unwrap().Dea)
	suite.True(dst.KDJ.IsNone())

	src.MA[0] = optional.Some(6.0)
	suite.Equal(5.0, dst.MA[0].Unwrap())
}
