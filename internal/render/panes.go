package render

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-kline/internal/types"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// valueFn extracts one plotted value from a bar.
type valueFn func(b types.Bar) optional.Option[float64]

func (p *Painter) paintMain(r chart.Renderer, f Frame) {
	if _, ok := f.Geometry.Panes[types.PaneMain]; !ok {
		return
	}

	if p.cfg.Layout.MinuteMode {
		p.polyline(r, f, types.PaneMain, p.palette.minute, 1.5, func(b types.Bar) optional.Option[float64] {
			return optional.Some(b.Close)
		})
	} else {
		p.paintCandles(r, f)
	}

	switch p.cfg.Layout.PrimaryIndicator {
	case types.IndicatorTypeMA:
		p.slicedLines(r, f, types.PaneMain, len(p.cfg.Indicators.MAPeriods), func(b types.Bar) []optional.Option[float64] {
			return b.Indicators.MA
		})
	case types.IndicatorTypeBOLL:
		parts := []func(types.BOLL) float64{
			func(v types.BOLL) float64 { return v.Mid },
			func(v types.BOLL) float64 { return v.Up },
			func(v types.BOLL) float64 { return v.Down },
		}

		for i, part := range parts {
			p.polyline(r, f, types.PaneMain, p.palette.seriesColor(i), 1, func(b types.Bar) optional.Option[float64] {
				return optional.Map(b.Indicators.BOLL, part)
			})
		}
	}
}

func (p *Painter) paintCandles(r chart.Renderer, f Frame) {
	g := f.Geometry
	half := g.CandleWidth / 2

	for i, b := range f.Bars {
		if !b.IsFinite() {
			continue
		}

		x := g.IndexCenterX(f.Start + i)
		high := g.YForValue(types.PaneMain, b.High)
		low := g.YForValue(types.PaneMain, b.Low)
		open := g.YForValue(types.PaneMain, b.Open)
		closeY := g.YForValue(types.PaneMain, b.Close)

		if high.IsNone() || low.IsNone() || open.IsNone() || closeY.IsNone() {
			continue
		}

		color := p.palette.increase
		if b.Close < b.Open {
			color = p.palette.decrease
		}

		strokeLine(r, x, high.Unwrap(), x, low.Unwrap(), color, 1, nil)

		top := math.Min(open.Unwrap(), closeY.Unwrap())
		height := math.Max(math.Abs(open.Unwrap()-closeY.Unwrap()), 1)
		fillRect(r, types.Rect{X: x - half, Y: top, Width: g.CandleWidth, Height: height}, color)
	}
}

func (p *Painter) paintVolume(r chart.Renderer, f Frame) {
	g := f.Geometry
	if _, ok := g.Panes[types.PaneVolume]; !ok {
		return
	}

	base := g.YForValue(types.PaneVolume, 0)
	if base.IsNone() {
		return
	}

	half := g.CandleWidth / 2

	for i, b := range f.Bars {
		y := g.YForValue(types.PaneVolume, b.Volume)
		if !b.IsFinite() || y.IsNone() {
			continue
		}

		color := p.palette.increase
		if b.Close < b.Open {
			color = p.palette.decrease
		}

		top := math.Min(y.Unwrap(), base.Unwrap())
		height := math.Abs(base.Unwrap() - y.Unwrap())
		fillRect(r, types.Rect{X: g.IndexCenterX(f.Start+i) - half, Y: top, Width: g.CandleWidth, Height: height}, color)
	}

	p.slicedLines(r, f, types.PaneVolume, len(p.cfg.Indicators.VolumeMAPeriods), func(b types.Bar) []optional.Option[float64] {
		return b.Indicators.VolumeMA
	})
}

func (p *Painter) paintSecondary(r chart.Renderer, f Frame) {
	if _, ok := f.Geometry.Panes[types.PaneSecondary]; !ok {
		return
	}

	switch p.cfg.Layout.SecondaryIndicator {
	case types.IndicatorTypeMACD:
		p.paintMACDHistogram(r, f)
		p.polyline(r, f, types.PaneSecondary, p.palette.seriesColor(0), 1, func(b types.Bar) optional.Option[float64] {
			return optional.Map(b.Indicators.MACD, func(m types.MACD) float64 { return m.Dif })
		})
		p.polyline(r, f, types.PaneSecondary, p.palette.seriesColor(1), 1, func(b types.Bar) optional.Option[float64] {
			return optional.Map(b.Indicators.MACD, func(m types.MACD) float64 { return m.Dea })
		})
	case types.IndicatorTypeKDJ:
		parts := []func(types.KDJ) float64{
			func(v types.KDJ) float64 { return v.K },
			func(v types.KDJ) float64 { return v.D },
			func(v types.KDJ) float64 { return v.J },
		}

		for i, part := range parts {
			p.polyline(r, f, types.PaneSecondary, p.palette.seriesColor(i), 1, func(b types.Bar) optional.Option[float64] {
				return optional.Map(b.Indicators.KDJ, part)
			})
		}
	case types.IndicatorTypeRSI:
		p.slicedLines(r, f, types.PaneSecondary, len(p.cfg.Indicators.RSIPeriods), func(b types.Bar) []optional.Option[float64] {
			return b.Indicators.RSI
		})
	case types.IndicatorTypeWR:
		p.slicedLines(r, f, types.PaneSecondary, len(p.cfg.Indicators.WRPeriods), func(b types.Bar) []optional.Option[float64] {
			return b.Indicators.WR
		})
	}
}

func (p *Painter) paintMACDHistogram(r chart.Renderer, f Frame) {
	g := f.Geometry

	zero := g.YForValue(types.PaneSecondary, 0)
	if zero.IsNone() {
		return
	}

	half := math.Max(g.CandleWidth/2, 0.5)

	for i, b := range f.Bars {
		if b.Indicators.MACD.IsNone() {
			continue
		}

		m := b.Indicators.MACD.Unwrap()

		y := g.YForValue(types.PaneSecondary, m.Macd)
		if y.IsNone() {
			continue
		}

		color := p.palette.increase
		if m.Macd < 0 {
			color = p.palette.decrease
		}

		top := math.Min(y.Unwrap(), zero.Unwrap())
		height := math.Max(math.Abs(zero.Unwrap()-y.Unwrap()), 1)
		fillRect(r, types.Rect{X: g.IndexCenterX(f.Start+i) - half, Y: top, Width: 2 * half, Height: height}, color)
	}
}

// slicedLines draws one line per entry of a per-period indicator group.
func (p *Painter) slicedLines(r chart.Renderer, f Frame, pane types.Pane, count int, group func(types.Bar) []optional.Option[float64]) {
	for k := 0; k < count; k++ {
		p.polyline(r, f, pane, p.palette.seriesColor(k), 1, func(b types.Bar) optional.Option[float64] {
			values := group(b)
			if k >= len(values) {
				return optional.None[float64]()
			}

			return values[k]
		})
	}
}

// polyline strokes value across the bars, breaking the path at absent values.
func (p *Painter) polyline(r chart.Renderer, f Frame, pane types.Pane, color drawing.Color, width float64, value valueFn) {
	g := f.Geometry
	r.SetStrokeColor(color)
	r.SetStrokeWidth(width)

	open := false

	for i, b := range f.Bars {
		v := value(b)

		var y optional.Option[float64]
		if v.IsSome() {
			y = g.YForValue(pane, v.Unwrap())
		}

		if y.IsNone() {
			if open {
				r.Stroke()
				open = false
			}

			continue
		}

		x := px(g.IndexCenterX(f.Start + i))
		if open {
			r.LineTo(x, px(y.Unwrap()))
		} else {
			r.MoveTo(x, px(y.Unwrap()))
			open = true
		}
	}

	if open {
		r.Stroke()
	}
}
