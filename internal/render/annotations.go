package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/rxtech-lab/argo-kline/internal/draw"
	"github.com/rxtech-lab/argo-kline/internal/format"
	"github.com/rxtech-lab/argo-kline/internal/types"
	"github.com/rxtech-lab/argo-kline/internal/viewport"
	"github.com/wcharczuk/go-chart/v2"
)

const markRadius = 6

func (p *Painter) paintOrderLines(r chart.Renderer, f Frame, hasText bool) {
	g := f.Geometry

	for _, line := range f.OrderLines {
		y := g.YForValue(types.PaneMain, line.Price)
		if y.IsNone() {
			continue
		}

		color := p.palette.text
		if line.Color != "" {
			if c, err := parseColor(line.Color); err == nil {
				color = c
			}
		}

		strokeLine(r, 0, y.Unwrap(), g.Width, y.Unwrap(), color, 1, []float64{6, 4})

		if hasText {
			label := fmt.Sprintf("%s %s @ %s", strings.ToUpper(string(line.Type)),
				format.Fixed(line.Amount, p.cfg.Format.VolumePrecision), p.format.Price(line.Price))
			r.SetFontColor(color)
			r.Text(label, 4, px(y.Unwrap())-3)
		}
	}
}

// paintMarks draws buy marks under the low and sell marks over the high of
// their bar. Marks whose timestamp is not a visible bar are skipped.
func (p *Painter) paintMarks(r chart.Renderer, f Frame, hasText bool) {
	if len(f.Marks) == 0 {
		return
	}

	g := f.Geometry

	index := make(map[int64]int, len(f.Bars))
	for i, b := range f.Bars {
		index[b.Timestamp] = i
	}

	for _, mark := range f.Marks {
		i, ok := index[mark.Time]
		if !ok {
			continue
		}

		b := f.Bars[i]
		x := g.IndexCenterX(f.Start + i)

		color, anchor, offset, text := p.palette.increase, b.Low, float64(markRadius+4), "B"
		if mark.Side == types.MarkSideSell {
			color, anchor, offset, text = p.palette.decrease, b.High, -float64(markRadius+4), "S"
		}

		y := g.YForValue(types.PaneMain, anchor)
		if y.IsNone() {
			continue
		}

		cy := y.Unwrap() + offset
		r.SetFillColor(color)
		r.SetStrokeColor(color)
		r.SetStrokeWidth(1)
		r.Circle(markRadius, px(x), px(cy))
		r.FillStroke()

		if hasText {
			r.SetFontColor(p.palette.background)
			r.Text(text, px(x)-r.MeasureText(text).Width()/2, px(cy)+fontSize/2-1)
		}
	}
}

func (p *Painter) paintDrawItems(r chart.Renderer, f Frame) {
	g := f.Geometry

	for i, item := range f.DrawItems {
		color := toDrawing(item.Style.Color)
		width := math.Max(item.Style.LineHeight, 1)

		var dash []float64
		if item.Style.IsDashed() {
			dash = []float64{item.Style.DashWidth, item.Style.DashSpace}
		}

		for _, seg := range draw.Segments(item) {
			a := g.ValueToPixel(item.Pane, seg.A)
			b := g.ValueToPixel(item.Pane, seg.B)

			if a.IsNone() || b.IsNone() {
				continue
			}

			end := b.Unwrap()
			if seg.Ray {
				end = extend(a.Unwrap(), end, g.Width+g.Height)
			}

			strokeLine(r, a.Unwrap().X, a.Unwrap().Y, end.X, end.Y, color, width, dash)
		}

		if i != f.Selected && item.IsComplete() {
			continue
		}

		for _, pt := range item.Points {
			c := g.ValueToPixel(item.Pane, pt)
			if c.IsNone() {
				continue
			}

			r.SetFillColor(p.palette.background)
			r.SetStrokeColor(color)
			r.SetStrokeWidth(width)
			r.Circle(4, px(c.Unwrap().X), px(c.Unwrap().Y))
			r.FillStroke()
		}
	}
}

// extend pushes b away from a along a->b by length pixels.
func extend(a, b viewport.PixelPoint, length float64) viewport.PixelPoint {
	dx, dy := b.X-a.X, b.Y-a.Y

	n := math.Hypot(dx, dy)
	if n == 0 {
		return b
	}

	return viewport.PixelPoint{X: b.X + dx/n*length, Y: b.Y + dy/n*length}
}
