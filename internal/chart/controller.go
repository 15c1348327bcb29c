package chart

import (
	"io"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-kline/internal/config"
	"github.com/rxtech-lab/argo-kline/internal/draw"
	"github.com/rxtech-lab/argo-kline/internal/format"
	"github.com/rxtech-lab/argo-kline/internal/indicator"
	"github.com/rxtech-lab/argo-kline/internal/logger"
	"github.com/rxtech-lab/argo-kline/internal/marker"
	"github.com/rxtech-lab/argo-kline/internal/render"
	"github.com/rxtech-lab/argo-kline/internal/store"
	"github.com/rxtech-lab/argo-kline/internal/types"
	"github.com/rxtech-lab/argo-kline/internal/viewport"
	"github.com/rxtech-lab/argo-kline/pkg/errors"
	"github.com/wcharczuk/go-chart/v2"
	"go.uber.org/zap"
)

// Options configures a Controller. Every field is optional.
type Options struct {
	Config    *config.Config
	Observer  Observer
	Requester FrameRequester
	Logger    *logger.Logger
}

// Controller is the host-facing chart. Host mutations go to the bar store and
// mark the chart dirty; geometry catches up with the store in RenderFrame.
//
// Lock order is viewMu before drawMu. The store and the marker book carry
// their own locks and are never called while drawMu is held.
type Controller struct {
	config   *config.Holder
	store    *store.Store
	markers  *marker.Book
	painter  atomic.Pointer[render.Painter]
	observer Observer
	frames   FrameRequester

	viewMu sync.Mutex
	view   *viewport.Viewport
	// origin is the store origin the viewport and draw items are aligned to.
	origin int64
	label  types.Rect

	drawMu sync.Mutex
	draw   *draw.Machine
	events eventQueue

	dirty      atomic.Bool
	frameCount atomic.Uint64
	root       *logger.Logger
	logger     *logger.Logger
}

// New creates a controller with an empty bar store.
func New(opts Options) (*Controller, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}

	engine, err := indicator.NewEngine(cfg.Indicators, log)
	if err != nil {
		return nil, err
	}

	painter, err := render.NewPainter(cfg, log)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		config:   config.NewHolder(cfg),
		store:    store.NewStore(engine, cfg.ReplaceLastPolicy, log),
		markers:  marker.NewBook(log),
		observer: opts.Observer,
		frames:   opts.Requester,
		view:     viewport.New(cfg.Layout, log),
		root:     log,
		logger:   log.Named("chart"),
	}

	if c.observer == nil {
		c.observer = nopObserver{}
	}

	if c.frames == nil {
		c.frames = nopRequester{}
	}

	c.draw, err = draw.New(cfg.Draw, &c.events, log)
	if err != nil {
		return nil, err
	}

	c.painter.Store(painter)
	c.store.OnChange(c.onStoreChange)

	return c, nil
}

// Config returns the current configuration snapshot.
func (c *Controller) Config() *config.Config {
	return c.config.Load()
}

// SetConfig swaps the configuration. Indicator periods are fixed for the
// lifetime of the controller because stored values were computed with them.
func (c *Controller) SetConfig(cfg *config.Config) error {
	if cfg == nil {
		return errors.New(errors.ErrCodeMissingParameter, "config is required")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if !reflect.DeepEqual(cfg.Indicators, c.config.Load().Indicators) {
		return errors.New(errors.ErrCodeInvalidConfiguration, "indicator periods cannot change on a live chart")
	}

	painter, err := render.NewPainter(cfg, c.root)
	if err != nil {
		return err
	}

	c.viewMu.Lock()
	c.drawMu.Lock()
	err = c.draw.Configure(cfg.Draw)
	if err == nil {
		c.view.SetLayout(cfg.Layout)
	}
	c.drawMu.Unlock()
	c.viewMu.Unlock()

	if err != nil {
		return err
	}

	if _, err := c.config.Swap(cfg); err != nil {
		return err
	}

	c.painter.Store(painter)
	c.store.SetReplaceLastPolicy(cfg.ReplaceLastPolicy)
	c.markDirty()

	return nil
}

// Store returns the bar store backing the chart.
func (c *Controller) Store() *store.Store {
	return c.store
}

// UpdateLastCandlestick replaces the newest bar with a live tick.
func (c *Controller) UpdateLastCandlestick(in types.BarInput) error {
	if err := c.store.ReplaceLast(in); err != nil {
		c.logger.Warn("live tick rejected", zap.Int64("timestamp", in.Timestamp), zap.Error(err))

		return err
	}

	return nil
}

// AppendCandlesticks appends newer bars. Invalid or out-of-order bars are
// dropped; the call fails only when nothing was admitted.
func (c *Controller) AppendCandlesticks(in []types.BarInput) error {
	n, err := c.store.Append(in)
	if err != nil {
		return err
	}

	if n < len(in) {
		c.logger.Debug("dropped bars on append", zap.Int("received", len(in)), zap.Int("admitted", n))
	}

	return nil
}

// PrependCandlesticksAtStart prepends older history. The bars on screen stay in
// place once the next frame is rendered.
func (c *Controller) PrependCandlesticksAtStart(in []types.BarInput) error {
	n, err := c.store.Prepend(in)
	if err != nil {
		return err
	}

	if n < len(in) {
		c.logger.Debug("dropped bars on prepend", zap.Int("received", len(in)), zap.Int("admitted", n))
	}

	return nil
}

func (c *Controller) onStoreChange(change store.Change) {
	c.logger.Debug("bars changed",
		zap.String("kind", string(change.Kind)),
		zap.Int("count", change.Count),
		zap.Int("len", change.Len),
	)
	c.markDirty()
}

// markDirty requests one frame per dirty period.
func (c *Controller) markDirty() {
	if c.dirty.CompareAndSwap(false, true) {
		c.frames.RequestFrame()
	}
}

// Dirty reports whether a frame has been requested and not yet rendered.
func (c *Controller) Dirty() bool {
	return c.dirty.Load()
}

// Frames returns the number of frames rendered.
func (c *Controller) Frames() uint64 {
	return c.frameCount.Load()
}

// AddDrawItem adds a complete item authored outside the touch flow.
func (c *Controller) AddDrawItem(item types.DrawItem) (int, error) {
	c.drawMu.Lock()
	index, err := c.draw.Add(item)
	c.drawMu.Unlock()

	if err != nil {
		return 0, err
	}

	c.markDirty()

	return index, nil
}

// RemoveDrawItem removes the item at index.
func (c *Controller) RemoveDrawItem(index int) error {
	return c.withDraw(func(m *draw.Machine) error { return m.Remove(index) })
}

// UpdateDrawItem restyles and locks or unlocks the item at index.
func (c *Controller) UpdateDrawItem(index int, style types.Style, locked bool) error {
	return c.withDraw(func(m *draw.Machine) error { return m.Update(index, style, locked) })
}

// DrawItems returns a copy of every draw item.
func (c *Controller) DrawItems() []types.DrawItem {
	c.drawMu.Lock()
	defer c.drawMu.Unlock()

	return c.draw.Items()
}

// SelectedDrawItem returns the selected item index or draw.NoSelection.
func (c *Controller) SelectedDrawItem() int {
	c.drawMu.Lock()
	defer c.drawMu.Unlock()

	return c.draw.Selected()
}

// DrawState returns the state of the draw tool.
func (c *Controller) DrawState() draw.State {
	c.drawMu.Lock()
	defer c.drawMu.Unlock()

	return c.draw.State()
}

// SelectDrawTool arms a draw tool, or disarms it with DrawTypeNone.
func (c *Controller) SelectDrawTool(tool types.DrawType) error {
	return c.withDraw(func(m *draw.Machine) error { return m.SelectTool(tool) })
}

// TrashSelected removes the selected or unfinished item.
func (c *Controller) TrashSelected() bool {
	var removed bool

	_ = c.withDraw(func(m *draw.Machine) error {
		removed = m.Trash()

		return nil
	})

	return removed
}

// ClearDrawItems removes every draw item.
func (c *Controller) ClearDrawItems() {
	_ = c.withDraw(func(m *draw.Machine) error {
		m.Clear()

		return nil
	})
}

// FixDrawing leaves drawing mode, discarding an unfinished item.
func (c *Controller) FixDrawing() {
	_ = c.withDraw(func(m *draw.Machine) error {
		m.Fix()

		return nil
	})
}

// withDraw runs fn under drawMu and dispatches the events it produced.
func (c *Controller) withDraw(fn func(m *draw.Machine) error) error {
	c.drawMu.Lock()
	err := fn(c.draw)
	events := c.events.take()
	c.drawMu.Unlock()

	c.dispatch(events)

	if err == nil {
		c.markDirty()
	}

	return err
}

func (c *Controller) dispatch(events []drawEvent) {
	for _, e := range events {
		e.deliver(c.observer)
	}
}

// HandleTouch routes a touch to the draw layer first. A touch-down the draw
// layer does not consume is reported through OnChartTouch; landing on the
// current-price label also scrolls to the newest bar. The result reports
// whether the draw layer consumed the touch.
//
// viewMu is held across the draw layer so a frame cannot shift the items for a
// prepend between reading the geometry and hit-testing against it.
func (c *Controller) HandleTouch(ev types.TouchEvent) bool {
	c.viewMu.Lock()
	geometry := c.view.Geometry()
	label := c.label

	c.drawMu.Lock()
	consumed := c.draw.HandleTouch(ev, geometry)
	events := c.events.take()
	c.drawMu.Unlock()
	c.viewMu.Unlock()

	c.dispatch(events)

	if consumed {
		c.markDirty()

		return true
	}

	if ev.Phase != types.TouchPhaseDown {
		return false
	}

	onLabel := label.Contains(ev.X, ev.Y)
	if onLabel {
		c.ScrollToEnd()
	}

	c.observer.OnChartTouch(types.ChartTouch{
		X:                   ev.X,
		Y:                   ev.Y,
		IsOnClosePriceLabel: onLabel,
		ClosePriceFrame:     label,
	})

	return false
}

// ScrollBy moves the view by dx pixels, positive towards newer bars. Reaching
// the oldest bar fires OnScrollLeft once until more history is prepended.
func (c *Controller) ScrollBy(dx float64) {
	c.viewMu.Lock()
	c.view.ScrollBy(dx)
	ts := c.loadMore()
	c.viewMu.Unlock()

	c.markDirty()

	if ts.IsSome() {
		c.observer.OnScrollLeft(ts.Unwrap())
	}
}

// ScrollToEnd pins the view to the newest bar.
func (c *Controller) ScrollToEnd() {
	c.viewMu.Lock()
	c.view.ScrollToEnd()
	c.viewMu.Unlock()

	c.markDirty()
}

// Zoom scales the bar width keeping the bar under anchorX in place.
func (c *Controller) Zoom(factor, anchorX float64) {
	c.viewMu.Lock()
	c.view.Zoom(factor, anchorX)
	ts := c.loadMore()
	c.viewMu.Unlock()

	c.markDirty()

	if ts.IsSome() {
		c.observer.OnScrollLeft(ts.Unwrap())
	}
}

// Resize sets the view size in pixels.
func (c *Controller) Resize(width, height float64) error {
	c.viewMu.Lock()
	err := c.view.Resize(width, height)
	c.viewMu.Unlock()

	if err != nil {
		return err
	}

	c.markDirty()

	return nil
}

// loadMore returns the oldest loaded timestamp when the scroll-left trigger
// fires. Callers hold viewMu.
func (c *Controller) loadMore() optional.Option[int64] {
	if !c.view.ShouldLoadMore() {
		return optional.None[int64]()
	}

	oldest := c.store.SnapshotFrom(c.origin, 0, 1)
	if len(oldest) == 0 {
		return optional.None[int64]()
	}

	c.logger.Debug("reached oldest bar", zap.Int64("timestamp", oldest[0].Timestamp))

	return optional.Some(oldest[0].Timestamp)
}

// AddOrderLine shows an order line, replacing one with the same ID.
func (c *Controller) AddOrderLine(line types.OrderLine) error {
	return c.withMarkers(c.markers.AddOrderLine(line))
}

// UpdateOrderLine replaces an existing order line.
func (c *Controller) UpdateOrderLine(line types.OrderLine) error {
	return c.withMarkers(c.markers.UpdateOrderLine(line))
}

// RemoveOrderLine removes the order line with the given ID.
func (c *Controller) RemoveOrderLine(id string) error {
	return c.withMarkers(c.markers.RemoveOrderLine(id))
}

// OrderLines returns every order line.
func (c *Controller) OrderLines() []types.OrderLine {
	return c.markers.OrderLines()
}

// AddBuySellMark pins a trade mark to a bar, replacing one with the same ID.
func (c *Controller) AddBuySellMark(mark types.BuySellMark) error {
	return c.withMarkers(c.markers.AddBuySellMark(mark))
}

// UpdateBuySellMark replaces an existing trade mark.
func (c *Controller) UpdateBuySellMark(mark types.BuySellMark) error {
	return c.withMarkers(c.markers.UpdateBuySellMark(mark))
}

// RemoveBuySellMark removes the trade mark with the given ID.
func (c *Controller) RemoveBuySellMark(id string) error {
	return c.withMarkers(c.markers.RemoveBuySellMark(id))
}

// BuySellMarks returns every trade mark.
func (c *Controller) BuySellMarks() []types.BuySellMark {
	return c.markers.BuySellMarks()
}

func (c *Controller) withMarkers(err error) error {
	if err != nil {
		return err
	}

	c.markDirty()

	return nil
}

// SelectedDetails returns the detail panel rows for the bar at series index.
func (c *Controller) SelectedDetails(index int) optional.Option[[]types.DetailItem] {
	bar := c.store.At(index)
	if bar.IsNone() {
		c.logger.Debug("no bar for detail panel", zap.Int("index", index))

		return optional.None[[]types.DetailItem]()
	}

	return optional.Some(format.New(c.config.Load()).Details(bar.Unwrap()))
}

// IndexAt returns the series index of the bar under pixel x as of the last
// geometry pass.
func (c *Controller) IndexAt(x float64) optional.Option[int] {
	c.viewMu.Lock()
	geometry := c.view.Geometry()
	origin := c.origin
	c.viewMu.Unlock()

	if !geometry.Ready() || geometry.BarWidth <= 0 {
		return optional.None[int]()
	}

	i := int((x + geometry.Scroll) / geometry.BarWidth)
	if x+geometry.Scroll < 0 || i >= geometry.Count {
		return optional.None[int]()
	}

	_, now := c.store.Extent()

	return optional.Some(i + int(now-origin))
}

// Frame brings the geometry up to date with the store and returns the input of
// the next render pass. It clears the dirty flag first so that a mutation
// racing with the pass requests another frame.
func (c *Controller) Frame() render.Frame {
	c.dirty.Store(false)

	cfg := c.config.Load()

	c.viewMu.Lock()

	n, origin := c.store.Extent()

	wasAtEnd := c.view.IsAtEnd()

	if k := int(origin - c.origin); k > 0 {
		c.view.OnPrepend(k, c.view.Count()+k)

		c.drawMu.Lock()
		c.draw.ShiftX(k)
		c.drawMu.Unlock()

		c.origin = origin
		c.logger.Debug("shifted view after prepend", zap.Int("bars", k))
	}

	if n != c.view.Count() {
		c.view.OnAppend(n, wasAtEnd)
	}

	start, end := c.view.Geometry().VisibleRange()
	bars := c.store.SnapshotFrom(origin, start, end)
	c.view.SetRanges(viewport.FitRanges(bars, 0, len(bars), cfg.Layout))

	geometry := c.view.Geometry()
	ts := c.loadMore()

	c.drawMu.Lock()
	items := c.draw.Items()
	selected := c.draw.Selected()
	c.drawMu.Unlock()

	c.viewMu.Unlock()

	if ts.IsSome() {
		c.observer.OnScrollLeft(ts.Unwrap())
	}

	last := optional.None[types.Bar]()
	if tail := c.store.SnapshotFrom(origin, n-1, n); len(tail) == 1 {
		last = optional.Some(tail[0])
	}

	return render.Frame{
		Bars:       bars,
		Start:      start,
		Last:       last,
		Geometry:   geometry,
		DrawItems:  items,
		Selected:   selected,
		OrderLines: c.markers.OrderLines(),
		Marks:      c.markers.BuySellMarks(),
	}
}

// RenderFrame runs one geometry pass and paints it onto r.
func (c *Controller) RenderFrame(r chart.Renderer) {
	f := c.Frame()
	label := c.painter.Load().Paint(r, f)
	c.finishFrame(label)
}

// RenderTo runs one geometry pass and writes it as an image from provider,
// such as chart.PNG or chart.SVG.
func (c *Controller) RenderTo(w io.Writer, provider chart.RendererProvider) error {
	f := c.Frame()

	label, err := c.painter.Load().Render(w, provider, f)
	if err != nil {
		c.logger.Error("failed to render frame", zap.Error(err))

		return err
	}

	c.finishFrame(label)

	return nil
}

// ClosePriceFrame returns the current-price label frame of the last frame.
func (c *Controller) ClosePriceFrame() optional.Option[types.Rect] {
	c.viewMu.Lock()
	defer c.viewMu.Unlock()

	if c.label.Width <= 0 {
		return optional.None[types.Rect]()
	}

	return optional.Some(c.label)
}

func (c *Controller) finishFrame(label optional.Option[types.Rect]) {
	c.viewMu.Lock()
	c.label = types.Rect{}
	if label.IsSome() {
		c.label = label.Unwrap()
	}
	c.viewMu.Unlock()

	c.frameCount.Add(1)
}
