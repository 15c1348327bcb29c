package render

import (
	"io"
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-kline/internal/config"
	"github.com/rxtech-lab/argo-kline/internal/format"
	"github.com/rxtech-lab/argo-kline/internal/logger"
	"github.com/rxtech-lab/argo-kline/internal/types"
	"github.com/rxtech-lab/argo-kline/internal/viewport"
	"github.com/rxtech-lab/argo-kline/pkg/errors"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"go.uber.org/zap"
)

const fontSize = 9

// Frame is the immutable input of one render pass.
type Frame struct {
	// Bars holds the visible bars; Bars[i] is series index Start+i.
	Bars  []types.Bar
	Start int
	// Last is the newest bar of the series, used for the current-price label.
	Last       optional.Option[types.Bar]
	Geometry   viewport.Geometry
	DrawItems  []types.DrawItem
	Selected   int
	OrderLines []types.OrderLine
	Marks      []types.BuySellMark
}

// Painter draws frames with one configuration snapshot.
type Painter struct {
	cfg     *config.Config
	palette palette
	format  *format.Formatter
	logger  *logger.Logger
}

// NewPainter creates a painter for cfg.
func NewPainter(cfg *config.Config, log *logger.Logger) (*Painter, error) {
	pal, err := newPalette(cfg.Colors)
	if err != nil {
		return nil, err
	}

	return &Painter{
		cfg:     cfg,
		palette: pal,
		format:  format.New(cfg),
		logger:  log.Named("render"),
	}, nil
}

// Render paints f onto a renderer from provider sized to the frame and writes
// the encoded image to w.
func (p *Painter) Render(w io.Writer, provider chart.RendererProvider, f Frame) (optional.Option[types.Rect], error) {
	width, height := px(f.Geometry.Width), px(f.Geometry.Height)
	if width <= 0 || height <= 0 {
		return optional.None[types.Rect](), errors.New(errors.ErrCodeGeometryNotReady, "cannot render an unsized frame")
	}

	r, err := provider(width, height)
	if err != nil {
		return optional.None[types.Rect](), errors.Wrap(errors.ErrCodeRenderFailed, "failed to create renderer", err)
	}

	label := p.Paint(r, f)

	if err := r.Save(w); err != nil {
		return optional.None[types.Rect](), errors.Wrap(errors.ErrCodeRenderFailed, "failed to encode frame", err)
	}

	return label, nil
}

// Paint draws f onto r and returns the current-price label frame, which is
// None when there is no bar or the geometry is not ready.
func (p *Painter) Paint(r chart.Renderer, f Frame) optional.Option[types.Rect] {
	g := f.Geometry

	fillRect(r, types.Rect{Width: g.Width, Height: g.Height}, p.palette.background)
	p.paintGrid(r, g)

	hasText := p.setFont(r)

	if !g.Ready() {
		p.logger.Debug("skipping frame content, geometry not ready")

		return optional.None[types.Rect]()
	}

	p.paintMain(r, f)
	p.paintVolume(r, f)
	p.paintSecondary(r, f)
	p.paintOrderLines(r, f, hasText)
	p.paintMarks(r, f, hasText)
	p.paintDrawItems(r, f)

	if hasText {
		p.paintAxisLabels(r, g)
	}

	return p.paintClosePrice(r, f, hasText)
}

func (p *Painter) setFont(r chart.Renderer) bool {
	font, err := chart.GetDefaultFont()
	if err != nil {
		p.logger.Warn("text disabled, default font unavailable", zap.Error(err))

		return false
	}

	r.SetFont(font)
	r.SetFontSize(fontSize)
	r.SetFontColor(p.palette.text)

	return true
}

func (p *Painter) paintGrid(r chart.Renderer, g viewport.Geometry) {
	layout := p.cfg.Layout
	top, bottom := layout.PaddingTop, g.Height-layout.PaddingBottom

	if layout.GridRows > 0 {
		for i := 0; i <= layout.GridRows; i++ {
			y := top + (bottom-top)*float64(i)/float64(layout.GridRows)
			strokeLine(r, 0, y, g.Width, y, p.palette.grid, 1, nil)
		}
	}

	if layout.GridColumns > 0 {
		for i := 1; i < layout.GridColumns; i++ {
			x := g.Width * float64(i) / float64(layout.GridColumns)
			strokeLine(r, x, top, x, bottom, p.palette.grid, 1, nil)
		}
	}
}

func (p *Painter) paintAxisLabels(r chart.Renderer, g viewport.Geometry) {
	r.SetFontColor(p.palette.text)

	for pane, rect := range g.Panes {
		rng, ok := g.Ranges[pane]
		if !ok {
			continue
		}

		label := p.format.Price
		if pane == types.PaneVolume {
			label = p.format.Volume
		}

		top := label(rng.Max)
		bottom := label(rng.Min)

		r.Text(top, px(g.Width)-r.MeasureText(top).Width()-4, px(rect.Y)+fontSize+2)
		r.Text(bottom, px(g.Width)-r.MeasureText(bottom).Width()-4, px(rect.Y+rect.Height)-2)
	}
}

// paintClosePrice draws the dashed current-price line and its label.
func (p *Painter) paintClosePrice(r chart.Renderer, f Frame, hasText bool) optional.Option[types.Rect] {
	if f.Last.IsNone() {
		return optional.None[types.Rect]()
	}

	g := f.Geometry
	last := f.Last.Unwrap()

	frame := g.ClosePriceLabelFrame(last.Close)
	if frame.IsNone() {
		return frame
	}

	if y := g.YForValue(types.PaneMain, last.Close); y.IsSome() {
		strokeLine(r, 0, y.Unwrap(), g.Width, y.Unwrap(), p.palette.closePrice, 1, []float64{4, 3})
	}

	rect := frame.Unwrap()
	fillRect(r, rect, p.palette.closePrice)

	if hasText {
		text := p.format.Price(last.Close)
		r.SetFontColor(p.palette.background)
		r.Text(text, px(rect.X+(rect.Width-float64(r.MeasureText(text).Width()))/2), px(rect.Y+rect.Height/2)+fontSize/2)
	}

	return frame
}

func px(v float64) int {
	return int(math.Round(v))
}

func fillRect(r chart.Renderer, rect types.Rect, color drawing.Color) {
	r.SetFillColor(color)
	r.SetStrokeColor(color)
	r.SetStrokeWidth(0)
	r.MoveTo(px(rect.X), px(rect.Y))
	r.LineTo(px(rect.X+rect.Width), px(rect.Y))
	r.LineTo(px(rect.X+rect.Width), px(rect.Y+rect.Height))
	r.LineTo(px(rect.X), px(rect.Y+rect.Height))
	r.Close()
	r.Fill()
}

func strokeLine(r chart.Renderer, x1, y1, x2, y2 float64, color drawing.Color, width float64, dash []float64) {
	r.SetStrokeColor(color)
	r.SetStrokeWidth(width)
	r.SetStrokeDashArray(dash)
	r.MoveTo(px(x1), px(y1))
	r.LineTo(px(x2), px(y2))
	r.Stroke()
	r.SetStrokeDashArray(nil)
}
