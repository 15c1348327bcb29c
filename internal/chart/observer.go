package chart

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-kline/internal/draw"
	"github.com/rxtech-lab/argo-kline/internal/types"
)

// Observer receives chart events. Calls are made on the goroutine that
// triggered them and never while the controller holds a lock, so an observer
// may call back into the controller.
type Observer interface {
	draw.Observer
	// OnScrollLeft fires once when the view reaches the oldest bar. The
	// timestamp is the oldest bar currently loaded.
	OnScrollLeft(timestamp int64)
	// OnChartTouch fires for a touch-down the draw layer did not consume.
	OnChartTouch(touch types.ChartTouch)
}

// FrameRequester asks the host to schedule a RenderFrame call.
type FrameRequester interface {
	RequestFrame()
}

type nopObserver struct{}

func (nopObserver) OnDrawItemTouched(optional.Option[types.DrawItem], int) {}
func (nopObserver) OnDrawItemComplete(types.DrawItem, int)                 {}
func (nopObserver) OnDrawPointComplete(types.DrawItem, int, int)           {}
func (nopObserver) OnScrollLeft(int64)                                     {}
func (nopObserver) OnChartTouch(types.ChartTouch)                          {}

type nopRequester struct{}

func (nopRequester) RequestFrame() {}

type drawEventKind int

const (
	drawItemTouched drawEventKind = iota
	drawItemComplete
	drawPointComplete
)

// drawEvent is one buffered draw.Observer call.
type drawEvent struct {
	kind       drawEventKind
	touched    optional.Option[types.DrawItem]
	item       types.DrawItem
	index      int
	pointCount int
}

// deliver makes the observer call the event stands for.
func (e drawEvent) deliver(o Observer) {
	switch e.kind {
	case drawItemTouched:
		o.OnDrawItemTouched(e.touched, e.index)
	case drawItemComplete:
		o.OnDrawItemComplete(e.item, e.index)
	case drawPointComplete:
		o.OnDrawPointComplete(e.item, e.index, e.pointCount)
	}
}

// eventQueue collects draw events raised while a lock is held so they can be
// dispatched after it is released. It is guarded by the lock it buffers under.
type eventQueue struct {
	events []drawEvent
}

var _ draw.Observer = (*eventQueue)(nil)

func (q *eventQueue) OnDrawItemTouched(item optional.Option[types.DrawItem], index int) {
	q.events = append(q.events, drawEvent{kind: drawItemTouched, touched: item, index: index})
}

func (q *eventQueue) OnDrawItemComplete(item types.DrawItem, index int) {
	q.events = append(q.events, drawEvent{kind: drawItemComplete, item: item, index: index})
}

func (q *eventQueue) OnDrawPointComplete(item types.DrawItem, index int, pointCount int) {
	q.events = append(q.events, drawEvent{kind: drawPointComplete, item: item, index: index, pointCount: pointCount})
}

func (q *eventQueue) take() []drawEvent {
	events := q.events
	q.events = nil

	return events
}
