package viewport

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-kline/internal/types"
)

// ValueRange is the value span mapped onto the height of a pane.
type ValueRange struct {
	Min float64
	Max float64
}

// Span returns Max - Min.
func (r ValueRange) Span() float64 {
	return r.Max - r.Min
}

// PixelPoint is a point in view pixel coordinates.
type PixelPoint struct {
	X float64
	Y float64
}

// Geometry is an immutable copy of the viewport used for one frame or one
// conversion. X in value space is a fractional bar index; bar i covers [i, i+1)
// and its center is i+0.5.
type Geometry struct {
	Width       float64
	Height      float64
	BarWidth    float64
	CandleWidth float64
	Scroll      float64
	Count       int
	Panes       map[types.Pane]types.Rect
	Ranges      map[types.Pane]ValueRange
	LabelWidth  float64
	LabelHeight float64
}

// Ready reports whether conversions can produce pixels.
func (g Geometry) Ready() bool {
	return g.Width > 0 && g.Height > 0 && g.BarWidth > 0 && g.Count > 0
}

// maxScroll returns the largest scroll offset for the given right padding.
func maxScroll(count int, barWidth, paddingRight, width float64) float64 {
	return math.Max(0, float64(count)*barWidth+paddingRight-width)
}

// VisibleRange returns the half-open range of bar indices intersecting the view.
func (g Geometry) VisibleRange() (int, int) {
	if !g.Ready() {
		return 0, 0
	}

	start := int(math.Floor(g.Scroll / g.BarWidth))
	end := int(math.Ceil((g.Scroll + g.Width) / g.BarWidth))

	start = min(max(start, 0), g.Count)
	end = min(max(end, start), g.Count)

	return start, end
}

// IndexCenterX returns the pixel x of the center of bar i.
func (g Geometry) IndexCenterX(i int) float64 {
	return (float64(i)+0.5)*g.BarWidth - g.Scroll
}

// PaneAt returns the pane containing pixel y.
func (g Geometry) PaneAt(y float64) optional.Option[types.Pane] {
	for _, p := range []types.Pane{types.PaneMain, types.PaneVolume, types.PaneSecondary} {
		r, ok := g.Panes[p]
		if ok && y >= r.Y && y <= r.Y+r.Height {
			return optional.Some(p)
		}
	}

	return optional.None[types.Pane]()
}

// PixelToValue converts a pixel to value space against the range of pane.
func (g Geometry) PixelToValue(pane types.Pane, px, py float64) optional.Option[types.Point] {
	rect, rng, ok := g.paneOf(pane)
	if !ok {
		return optional.None[types.Point]()
	}

	return optional.Some(types.Point{
		X: (px + g.Scroll) / g.BarWidth,
		Y: rng.Max - (py-rect.Y)/rect.Height*rng.Span(),
	})
}

// ValueToPixel converts a value-space point in pane to pixels.
func (g Geometry) ValueToPixel(pane types.Pane, p types.Point) optional.Option[PixelPoint] {
	rect, rng, ok := g.paneOf(pane)
	if !ok {
		return optional.None[PixelPoint]()
	}

	return optional.Some(PixelPoint{
		X: p.X*g.BarWidth - g.Scroll,
		Y: rect.Y + (rng.Max-p.Y)/rng.Span()*rect.Height,
	})
}

// YForValue converts a value of pane to a pixel y.
func (g Geometry) YForValue(pane types.Pane, v float64) optional.Option[float64] {
	rect, rng, ok := g.paneOf(pane)
	if !ok {
		return optional.None[float64]()
	}

	return optional.Some(rect.Y + (rng.Max-v)/rng.Span()*rect.Height)
}

// Tolerance converts a pixel radius to value-space radii (dx, dy) in pane at the
// current zoom.
func (g Geometry) Tolerance(pane types.Pane, px float64) optional.Option[types.Point] {
	rect, rng, ok := g.paneOf(pane)
	if !ok {
		return optional.None[types.Point]()
	}

	return optional.Some(types.Point{
		X: px / g.BarWidth,
		Y: px / rect.Height * rng.Span(),
	})
}

// ClosePriceLabelFrame returns the frame of the current-price label for price,
// docked to the right edge and kept inside the main pane.
func (g Geometry) ClosePriceLabelFrame(price float64) optional.Option[types.Rect] {
	rect, rng, ok := g.paneOf(types.PaneMain)
	if !ok || g.LabelWidth <= 0 || g.LabelHeight <= 0 {
		return optional.None[types.Rect]()
	}

	y := rect.Y + (rng.Max-price)/rng.Span()*rect.Height
	y = math.Min(math.Max(y, rect.Y+g.LabelHeight/2), rect.Y+rect.Height-g.LabelHeight/2)

	return optional.Some(types.Rect{
		X:      g.Width - g.LabelWidth,
		Y:      y - g.LabelHeight/2,
		Width:  g.LabelWidth,
		Height: g.LabelHeight,
	})
}

func (g Geometry) paneOf(pane types.Pane) (types.Rect, ValueRange, bool) {
	if !g.Ready() {
		return types.Rect{}, ValueRange{}, false
	}

	rect, ok := g.Panes[pane]
	if !ok || rect.Height <= 0 {
		return types.Rect{}, ValueRange{}, false
	}

	rng, ok := g.Ranges[pane]
	if !ok || rng.Span() <= 0 {
		return types.Rect{}, ValueRange{}, false
	}

	return rect, rng, true
}
