package viewport

import (
	"math"

	"github.com/rxtech-lab/argo-kline/internal/config"
	"github.com/rxtech-lab/argo-kline/internal/logger"
	"github.com/rxtech-lab/argo-kline/internal/types"
	"github.com/rxtech-lab/argo-kline/pkg/errors"
	"go.uber.org/zap"
)

// Viewport owns scroll, zoom and pane layout over a bar sequence of known length.
// It is not safe for concurrent use; the chart controller serializes access.
type Viewport struct {
	layout    config.Layout
	width     float64
	height    float64
	barWidth  float64
	scroll    float64
	count     int
	ranges    map[types.Pane]ValueRange
	leftFired bool
	logger    *logger.Logger
}

// New creates a viewport with no size. Conversions are unavailable until Resize.
func New(layout config.Layout, log *logger.Logger) *Viewport {
	return &Viewport{
		layout:   layout,
		barWidth: layout.ItemWidth,
		ranges:   make(map[types.Pane]ValueRange),
		logger:   log.Named("viewport"),
	}
}

// SetLayout applies a new layout snapshot, keeping the current zoom when it is
// still inside the new bounds.
func (v *Viewport) SetLayout(layout config.Layout) {
	v.layout = layout
	v.barWidth = v.clampBarWidth(v.barWidth)
	v.clampScroll()
}

// Resize sets the view size. Non-positive sizes are rejected and leave the
// viewport unchanged.
func (v *Viewport) Resize(width, height float64) error {
	if width <= 0 || height <= 0 {
		v.logger.Warn("rejecting non-positive viewport size", zap.Float64("width", width), zap.Float64("height", height))

		return errors.Newf(errors.ErrCodeGeometryNotReady, "viewport size must be positive, got %vx%v", width, height)
	}

	wasAtEnd := v.IsAtEnd()
	v.width, v.height = width, height
	v.barWidth = v.clampBarWidth(v.barWidth)

	if wasAtEnd {
		v.scroll = v.maxScroll()
	}

	v.clampScroll()

	return nil
}

// MaxScroll returns the scroll bound, or ErrCodeGeometryNotReady before a valid Resize.
func (v *Viewport) MaxScroll() (float64, error) {
	if v.width <= 0 || v.height <= 0 {
		return 0, errors.New(errors.ErrCodeGeometryNotReady, "viewport has no size")
	}

	return v.maxScroll(), nil
}

// Scroll returns the current scroll offset in pixels.
func (v *Viewport) Scroll() float64 {
	return v.scroll
}

// BarWidth returns the current horizontal pixels per bar.
func (v *Viewport) BarWidth() float64 {
	return v.barWidth
}

// Count returns the number of bars the viewport spans.
func (v *Viewport) Count() int {
	return v.count
}

// IsAtEnd reports whether the view is within one bar width of the newest bar.
// An unsized viewport counts as pinned to the end.
func (v *Viewport) IsAtEnd() bool {
	if v.width <= 0 {
		return true
	}

	return v.maxScroll()-v.scroll <= v.barWidth
}

// ScrollBy moves the view by dx pixels (positive towards newer bars).
func (v *Viewport) ScrollBy(dx float64) {
	v.scroll += dx
	v.clampScroll()
}

// ScrollTo sets the scroll offset.
func (v *Viewport) ScrollTo(x float64) {
	v.scroll = x
	v.clampScroll()
}

// ScrollToEnd pins the view to the newest bar.
func (v *Viewport) ScrollToEnd() {
	v.scroll = v.maxScroll()
}

// OnAppend updates the length after an append. wasAtEnd must be sampled before
// the append changed the content width.
func (v *Viewport) OnAppend(count int, wasAtEnd bool) {
	v.count = count

	if wasAtEnd {
		v.scroll = v.maxScroll()
	}

	v.clampScroll()
}

// OnPrepend shifts the origin by k bars so the bars on screen stay put, and
// re-arms the scroll-left trigger.
func (v *Viewport) OnPrepend(k, count int) {
	v.count = count
	v.scroll += float64(k) * v.barWidth
	v.leftFired = false
	v.clampScroll()
}

// Zoom scales the bar width by factor keeping the bar under anchorX in place.
func (v *Viewport) Zoom(factor, anchorX float64) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}

	anchor := (anchorX + v.scroll) / v.barWidth
	v.barWidth = v.clampBarWidth(v.barWidth * factor)
	v.scroll = anchor*v.barWidth - anchorX
	v.clampScroll()
}

// ShouldLoadMore fires once when the view reaches the left boundary. It stays
// quiet until OnPrepend commits new history.
func (v *Viewport) ShouldLoadMore() bool {
	if v.leftFired || v.count == 0 || v.width <= 0 || v.scroll > 0 {
		return false
	}

	v.leftFired = true

	return true
}

// SetRanges installs the value ranges used for y conversion.
func (v *Viewport) SetRanges(ranges map[types.Pane]ValueRange) {
	v.ranges = make(map[types.Pane]ValueRange, len(ranges))
	for p, r := range ranges {
		v.ranges[p] = r
	}
}

// Geometry returns an immutable copy for conversions and rendering.
func (v *Viewport) Geometry() Geometry {
	ranges := make(map[types.Pane]ValueRange, len(v.ranges))
	for p, r := range v.ranges {
		ranges[p] = r
	}

	return Geometry{
		Width:       v.width,
		Height:      v.height,
		BarWidth:    v.barWidth,
		CandleWidth: v.layout.CandleWidth / v.layout.ItemWidth * v.barWidth,
		Scroll:      v.scroll,
		Count:       v.count,
		Panes:       v.panes(),
		Ranges:      ranges,
		LabelWidth:  v.layout.ClosePriceLabelW,
		LabelHeight: v.layout.ClosePriceLabelH,
	}
}

// panes stacks the enabled panes between the paddings, sized by their flex.
func (v *Viewport) panes() map[types.Pane]types.Rect {
	out := make(map[types.Pane]types.Rect, 3)
	if v.width <= 0 || v.height <= 0 {
		return out
	}

	type slot struct {
		pane types.Pane
		flex float64
	}

	slots := []slot{{types.PaneMain, v.layout.MainFlex}}
	if v.layout.ShowVolume && v.layout.VolumeFlex > 0 {
		slots = append(slots, slot{types.PaneVolume, v.layout.VolumeFlex})
	}

	if v.layout.SecondaryIndicator != types.IndicatorTypeNone && v.layout.SecondaryFlex > 0 {
		slots = append(slots, slot{types.PaneSecondary, v.layout.SecondaryFlex})
	}

	total := 0.0
	for _, s := range slots {
		total += s.flex
	}

	usable := v.height - v.layout.PaddingTop - v.layout.PaddingBottom
	if usable <= 0 || total <= 0 {
		return out
	}

	y := v.layout.PaddingTop
	for _, s := range slots {
		h := usable * s.flex / total
		out[s.pane] = types.Rect{X: 0, Y: y, Width: v.width, Height: h}
		y += h
	}

	return out
}

func (v *Viewport) maxScroll() float64 {
	return maxScroll(v.count, v.barWidth, v.layout.PaddingRight, v.width)
}

func (v *Viewport) clampScroll() {
	v.scroll = math.Min(math.Max(v.scroll, 0), v.maxScroll())
}

func (v *Viewport) clampBarWidth(w float64) float64 {
	upper := v.layout.ItemWidth * 8
	if v.width > 0 && v.layout.MinVisibleCandles > 0 {
		upper = v.width / float64(v.layout.MinVisibleCandles)
	}

	lower := v.layout.MinItemWidth
	if upper < lower {
		upper = lower
	}

	return math.Min(math.Max(w, lower), upper)
}
