package format

import (
	"fmt"
	"math"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-kline/internal/config"
	"github.com/rxtech-lab/argo-kline/internal/types"
	"github.com/shopspring/decimal"
)

// Placeholder is shown for values that cannot be formatted.
const Placeholder = "--"

// Formatter renders bar values for labels and the detail panel.
type Formatter struct {
	cfg        config.FormatConfig
	layout     config.Layout
	indicators config.IndicatorConfig
	colors     config.ColorConfig
}

// New creates a formatter from one configuration snapshot.
func New(cfg *config.Config) *Formatter {
	return &Formatter{
		cfg:        cfg.Format,
		layout:     cfg.Layout,
		indicators: cfg.Indicators,
		colors:     cfg.Colors,
	}
}

// Fixed rounds v half away from zero to places decimals.
func Fixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}

	return decimal.NewFromFloat(v).StringFixed(places)
}

// Signed is Fixed with a leading "+" for positive values.
func Signed(v float64, places int32) string {
	s := Fixed(v, places)
	if s != Placeholder && v > 0 {
		return "+" + s
	}

	return s
}

// Price formats a price at the configured precision.
func (f *Formatter) Price(v float64) string {
	return Fixed(v, f.cfg.PricePrecision)
}

// Volume formats a volume at the configured precision.
func (f *Formatter) Volume(v float64) string {
	return Fixed(v, f.cfg.VolumePrecision)
}

// Time formats a millisecond timestamp in UTC.
func (f *Formatter) Time(ts int64) string {
	return time.UnixMilli(ts).UTC().Format(f.cfg.TimeLayout)
}

// Change returns the absolute and percentage change from open to close. The
// percentage is the placeholder when open is zero.
func (f *Formatter) Change(bar types.Bar) (string, string) {
	open := decimal.NewFromFloat(bar.Open)
	diff := decimal.NewFromFloat(bar.Close).Sub(open)

	abs := diff.StringFixed(f.cfg.PricePrecision)
	if diff.IsPositive() || diff.IsZero() {
		abs = "+" + abs
	}

	if open.IsZero() {
		return abs, Placeholder
	}

	pct := diff.Div(open).Mul(decimal.NewFromInt(100))

	rel := pct.StringFixed(2) + "%"
	if pct.IsPositive() || pct.IsZero() {
		rel = "+" + rel
	}

	return abs, rel
}

// Details builds the detail panel rows for bar: the OHLCV block followed by the
// present values of the selected indicators.
func (f *Formatter) Details(bar types.Bar) []types.DetailItem {
	color := f.colors.Increase
	if bar.Close < bar.Open {
		color = f.colors.Decrease
	}

	abs, rel := f.Change(bar)

	items := []types.DetailItem{
		{Title: "Time", Value: f.Time(bar.Timestamp)},
		{Title: "Open", Value: f.Price(bar.Open)},
		{Title: "High", Value: f.Price(bar.High)},
		{Title: "Low", Value: f.Price(bar.Low)},
		{Title: "Close", Value: f.Price(bar.Close)},
		{Title: "Change", Value: abs, Color: color},
		{Title: "Change %", Value: rel, Color: color},
		{Title: "Volume", Value: f.Volume(bar.Volume)},
	}

	ind := bar.Indicators

	switch f.layout.PrimaryIndicator {
	case types.IndicatorTypeMA:
		items = appendSeries(items, "MA", f.indicators.MAPeriods, ind.MA, f.cfg.PricePrecision)
	case types.IndicatorTypeBOLL:
		if ind.BOLL.IsSome() {
			b := ind.BOLL.Unwrap()
			items = append(items,
				types.DetailItem{Title: "BOLL-MB", Value: f.Price(b.Mid)},
				types.DetailItem{Title: "BOLL-UP", Value: f.Price(b.Up)},
				types.DetailItem{Title: "BOLL-DN", Value: f.Price(b.Down)},
			)
		}
	}

	switch f.layout.SecondaryIndicator {
	case types.IndicatorTypeMACD:
		if ind.MACD.IsSome() {
			m := ind.MACD.Unwrap()
			items = append(items,
				types.DetailItem{Title: "MACD", Value: Fixed(m.Macd, 4)},
				types.DetailItem{Title: "DEA", Value: Fixed(m.Dea, 4)},
				types.DetailItem{Title: "DIF", Value: Fixed(m.Dif, 4)},
			)
		}
	case types.IndicatorTypeKDJ:
		if ind.KDJ.IsSome() {
			k := ind.KDJ.Unwrap()
			items = append(items,
				types.DetailItem{Title: "K", Value: Fixed(k.K, 2)},
				types.DetailItem{Title: "D", Value: Fixed(k.D, 2)},
				types.DetailItem{Title: "J", Value: Fixed(k.J, 2)},
			)
		}
	case types.IndicatorTypeRSI:
		items = appendSeries(items, "RSI", f.indicators.RSIPeriods, ind.RSI, 2)
	case types.IndicatorTypeWR:
		items = appendSeries(items, "WR", f.indicators.WRPeriods, ind.WR, 2)
	}

	return items
}

// appendSeries adds one row per present value, titled by prefix and period.
func appendSeries(items []types.DetailItem, prefix string, periods []int, values []optional.Option[float64], places int32) []types.DetailItem {
	for i, v := range values {
		if v.IsNone() || i >= len(periods) {
			continue
		}

		items = append(items, types.DetailItem{
			Title: fmt.Sprintf("%s%d", prefix, periods[i]),
			Value: Fixed(v.Unwrap(), places),
		})
	}

	return items
}
