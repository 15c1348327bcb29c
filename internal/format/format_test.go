package format

import (
	"math"
	"testing"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-kline/internal/config"
	"github.com/rxtech-lab/argo-kline/internal/types"
	"github.com/stretchr/testify/suite"
)

type FormatTestSuite struct {
	suite.Suite
	cfg *config.Config
	f   *Formatter
}

func TestFormatSuite(t *testing.T) {
	suite.Run(t, new(FormatTestSuite))
}

func (suite *FormatTestSuite) SetupTest() {
	suite.cfg = config.Default()
	suite.f = New(suite.cfg)
}

func (suite *FormatTestSuite) TestFixed() {
	tests := []struct {
		v      float64
		places int32
		want   string
	}{
		{1.005, 2, "1.01"},
		{-2.5, 0, "-3"},
		{100, 2, "100.00"},
		{0.12345678, 4, "0.1235"},
		{math.NaN(), 2, Placeholder},
		{math.Inf(1), 2, Placeholder},
	}

	for _, tt := range tests {
		suite.Equal(tt.want, Fixed(tt.v, tt.places), "value %v", tt.v)
	}
}

func (suite *FormatTestSuite) TestSigned() {
	suite.Equal("+1.50", Signed(1.5, 2))
	suite.Equal("-1.50", Signed(-1.5, 2))
	suite.Equal("0.00", Signed(0, 2))
}

func (suite *FormatTestSuite) TestTimeUsesLayoutInUTC() {
	suite.Equal("2024-01-02 03:04", suite.f.Time(1704164640000))
}

func (suite *FormatTestSuite) TestChange() {
	abs, rel := suite.f.Change(types.Bar{Open: 100, Close: 102.5})
	suite.Equal("+2.50", abs)
	suite.Equal("+2.50%", rel)

	abs, rel = suite.f.Change(types.Bar{Open: 100, Close: 97})
	suite.Equal("-3.00", abs)
	suite.Equal("-3.00%", rel)

	_, rel = suite.f.Change(types.Bar{Open: 0, Close: 1})
	suite.Equal(Placeholder, rel)
}

func (suite *FormatTestSuite) TestDetailsBaseRows() {
	bar := types.Bar{Timestamp: 1704164640000, Open: 100, High: 110, Low: 95, Close: 97, Volume: 1234.5}

	items := suite.f.Details(bar)
	suite.Require().Len(items, 8)

	titles := make([]string, len(items))
	for i, it := range items {
		titles[i] = it.Title
	}

	suite.Equal([]string{"Time", "Open", "High", "Low", "Close", "Change", "Change %", "Volume"}, titles)
	suite.Equal("110.00", items[2].Value)
	suite.Equal("1234.50", items[7].Value)
	suite.Equal(suite.cfg.Colors.Decrease, items[5].Color)
	suite.Empty(items[1].Color)
}

func (suite *FormatTestSuite) TestDetailsIncludeSelectedIndicators() {
	bar := types.Bar{Timestamp: 1, Open: 1, High: 2, Low: 1, Close: 2, Volume: 1}
	bar.Indicators.MA = []optional.Option[float64]{
		optional.Some(1.234), optional.None[float64](), optional.Some(2.0), optional.None[float64](), optional.None[float64](),
	}
	bar.Indicators.MACD = optional.Some(types.MACD{Dif: 0.123456, Dea: 0.1, Macd: 0.046912})
	bar.Indicators.RSI = []optional.Option[float64]{optional.Some(55.555)}

	items := suite.f.Details(bar)
	suite.Require().Len(items, 13)
	suite.Equal(types.DetailItem{Title: "MA5", Value: "1.23"}, items[8])
	suite.Equal(types.DetailItem{Title: "MA20", Value: "2.00"}, items[9])
	suite.Equal(types.DetailItem{Title: "MACD", Value: "0.0469"}, items[10])
	suite.Equal(types.DetailItem{Title: "DIF", Value: "0.1235"}, items[12])
	suite.Equal(suite.cfg.Colors.Increase, items[5].Color)

	suite.cfg.Layout.SecondaryIndicator = types.IndicatorTypeRSI
	suite.cfg.Layout.PrimaryIndicator = types.IndicatorTypeNone
	items = New(suite.cfg).Details(bar)
	suite.Require().Len(items, 9)
	suite.Equal(types.DetailItem{Title: "RSI14", Value: "55.56"}, items[8])
}

func (suite *FormatTestSuite) TestDetailsSkipAbsentGroups() {
	suite.cfg.Layout.PrimaryIndicator = types.IndicatorTypeBOLL
	suite.cfg.Layout.SecondaryIndicator = types.IndicatorTypeKDJ

	items := New(suite.cfg).Details(types.Bar{Timestamp: 1, Open: 1, High: 1, Low: 1, Close: 1})
	suite.Len(items, 8)
}

func (suite *FormatTestSuite) TestColumnsAndRowsAlign() {
	bar := types.Bar{Timestamp: 1704164640000, Open: 100, High: 110, Low: 95, Close: 97, Volume: 10}
	bar.Indicators.MA = []optional.Option[float64]{optional.Some(99.5)}
	bar.Indicators.KDJ = optional.Some(types.KDJ{K: 20, D: 30.125, J: 0})

	cols := suite.f.Columns(types.IndicatorTypeMA, types.IndicatorTypeKDJ)
	suite.Equal([]string{"Time", "Open", "High", "Low", "Close", "Volume", "MA5", "MA10", "MA20", "MA30", "MA60", "K", "D", "J"}, cols)

	row := suite.f.Row(bar, types.IndicatorTypeMA, types.IndicatorTypeKDJ)
	suite.Require().Len(row, len(cols))
	suite.Equal("2024-01-02 03:04", row[0])
	suite.Equal("99.50", row[6])
	suite.Equal(Placeholder, row[7])
	suite.Equal("30.13", row[12])

	row = suite.f.Row(bar, types.IndicatorTypeBOLL, types.IndicatorTypeMACD)
	suite.Len(row, len(suite.f.Columns(types.IndicatorTypeBOLL, types.IndicatorTypeMACD)))
	suite.Equal([]string{Placeholder, Placeholder, Placeholder, Placeholder, Placeholder, Placeholder}, row[6:])

	suite.Len(suite.f.Columns(types.IndicatorTypeNone, types.IndicatorTypeNone), 6)
}
