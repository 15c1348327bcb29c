package viewport

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-kline/internal/config"
	"github.com/rxtech-lab/argo-kline/internal/types"
)

// extent accumulates the min and max of the finite values it sees.
type extent struct {
	min, max float64
	ok       bool
}

func (e *extent) add(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}

	if !e.ok {
		e.min, e.max, e.ok = v, v, true

		return
	}

	e.min = math.Min(e.min, v)
	e.max = math.Max(e.max, v)
}

func (e *extent) addAll(values []optional.Option[float64]) {
	for _, v := range values {
		if v.IsSome() {
			e.add(v.Unwrap())
		}
	}
}

// valueRange returns the accumulated range, widening a zero span so that the
// pane still maps onto a positive height.
func (e *extent) valueRange() optional.Option[ValueRange] {
	if !e.ok {
		return optional.None[ValueRange]()
	}

	if e.max == e.min {
		pad := math.Abs(e.max) * 0.01
		if pad == 0 {
			pad = 1
		}

		return optional.Some(ValueRange{Min: e.min - pad, Max: e.max + pad})
	}

	return optional.Some(ValueRange{Min: e.min, Max: e.max})
}

// FitRanges computes the value range of every visible pane from the bars in
// [start, end). Panes with nothing to show are left out.
func FitRanges(bars []types.Bar, start, end int, layout config.Layout) map[types.Pane]ValueRange {
	start = max(start, 0)
	end = min(end, len(bars))

	var mainExt, volExt, secExt extent

	for i := start; i < end; i++ {
		b := bars[i]
		if !b.IsFinite() {
			continue
		}

		if layout.MinuteMode {
			mainExt.add(b.Close)
		} else {
			mainExt.add(b.High)
			mainExt.add(b.Low)
		}

		switch layout.PrimaryIndicator {
		case types.IndicatorTypeMA:
			mainExt.addAll(b.Indicators.MA)
		case types.IndicatorTypeBOLL:
			if b.Indicators.BOLL.IsSome() {
				boll := b.Indicators.BOLL.Unwrap()
				mainExt.add(boll.Up)
				mainExt.add(boll.Down)
			}
		}

		volExt.add(0)
		volExt.add(b.Volume)
		volExt.addAll(b.Indicators.VolumeMA)

		switch layout.SecondaryIndicator {
		case types.IndicatorTypeMACD:
			if b.Indicators.MACD.IsSome() {
				m := b.Indicators.MACD.Unwrap()
				secExt.add(m.Dif)
				secExt.add(m.Dea)
				secExt.add(m.Macd)
			}
		case types.IndicatorTypeKDJ:
			if b.Indicators.KDJ.IsSome() {
				k := b.Indicators.KDJ.Unwrap()
				secExt.add(k.K)
				secExt.add(k.D)
				secExt.add(k.J)
			}
		case types.IndicatorTypeRSI:
			secExt.addAll(b.Indicators.RSI)
		case types.IndicatorTypeWR:
			secExt.addAll(b.Indicators.WR)
		}
	}

	out := make(map[types.Pane]ValueRange, 3)

	if r := mainExt.valueRange(); r.IsSome() {
		out[types.PaneMain] = r.Unwrap()
	}

	if layout.ShowVolume {
		if r := volExt.valueRange(); r.IsSome() {
			out[types.PaneVolume] = r.Unwrap()
		}
	}

	if layout.SecondaryIndicator != types.IndicatorTypeNone {
		if r := secExt.valueRange(); r.IsSome() {
			out[types.PaneSecondary] = r.Unwrap()
		}
	}

	return out
}
