package format

import (
	"fmt"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-kline/internal/types"
)

// Columns lists the table columns for bars with the given primary and
// secondary indicators. Every column is present on every row.
func (f *Formatter) Columns(primary, secondary types.IndicatorType) []string {
	cols := []string{"Time", "Open", "High", "Low", "Close", "Volume"}

	switch primary {
	case types.IndicatorTypeMA:
		cols = appendTitles(cols, "MA", f.indicators.MAPeriods)
	case types.IndicatorTypeBOLL:
		cols = append(cols, "BOLL-MB", "BOLL-UP", "BOLL-DN")
	}

	switch secondary {
	case types.IndicatorTypeMACD:
		cols = append(cols, "DIF", "DEA", "MACD")
	case types.IndicatorTypeKDJ:
		cols = append(cols, "K", "D", "J")
	case types.IndicatorTypeRSI:
		cols = appendTitles(cols, "RSI", f.indicators.RSIPeriods)
	case types.IndicatorTypeWR:
		cols = appendTitles(cols, "WR", f.indicators.WRPeriods)
	}

	return cols
}

// Row formats bar under Columns(primary, secondary). Absent values are the
// placeholder.
func (f *Formatter) Row(bar types.Bar, primary, secondary types.IndicatorType) []string {
	ind := bar.Indicators
	row := []string{
		f.Time(bar.Timestamp),
		f.Price(bar.Open),
		f.Price(bar.High),
		f.Price(bar.Low),
		f.Price(bar.Close),
		f.Volume(bar.Volume),
	}

	switch primary {
	case types.IndicatorTypeMA:
		row = appendValues(row, ind.MA, len(f.indicators.MAPeriods), f.cfg.PricePrecision)
	case types.IndicatorTypeBOLL:
		row = appendGroup(row, ind.BOLL, func(b types.BOLL) []float64 { return []float64{b.Mid, b.Up, b.Down} }, f.cfg.PricePrecision)
	}

	switch secondary {
	case types.IndicatorTypeMACD:
		row = appendGroup(row, ind.MACD, func(m types.MACD) []float64 { return []float64{m.Dif, m.Dea, m.Macd} }, 4)
	case types.IndicatorTypeKDJ:
		row = appendGroup(row, ind.KDJ, func(k types.KDJ) []float64 { return []float64{k.K, k.D, k.J} }, 2)
	case types.IndicatorTypeRSI:
		row = appendValues(row, ind.RSI, len(f.indicators.RSIPeriods), 2)
	case types.IndicatorTypeWR:
		row = appendValues(row, ind.WR, len(f.indicators.WRPeriods), 2)
	}

	return row
}

func appendTitles(cols []string, prefix string, periods []int) []string {
	for _, p := range periods {
		cols = append(cols, fmt.Sprintf("%s%d", prefix, p))
	}

	return cols
}

func appendValues(row []string, values []optional.Option[float64], n int, places int32) []string {
	for i := 0; i < n; i++ {
		if i >= len(values) || values[i].IsNone() {
			row = append(row, Placeholder)

			continue
		}

		row = append(row, Fixed(values[i].Unwrap(), places))
	}

	return row
}

func appendGroup[T any](row []string, group optional.Option[T], fields func(T) []float64, places int32) []string {
	if group.IsNone() {
		return append(row, Placeholder, Placeholder, Placeholder)
	}

	for _, v := range fields(group.Unwrap()) {
		row = append(row, Fixed(v, places))
	}

	return row
}
