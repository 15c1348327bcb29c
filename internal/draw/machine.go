package draw

import (
	"math"
	"slices"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-kline/internal/config"
	"github.com/rxtech-lab/argo-kline/internal/logger"
	"github.com/rxtech-lab/argo-kline/internal/types"
	"github.com/rxtech-lab/argo-kline/pkg/errors"
	"go.uber.org/zap"
)

// Machine turns touch streams into draw items and owns the draw-item list.
// It is not safe for concurrent use; the chart controller serializes access.
type Machine struct {
	items          []types.DrawItem
	state          State
	tool           types.DrawType
	selected       int
	active         int
	session        *session
	style          types.Style
	shouldContinue bool
	tolerance      float64
	observer       Observer
	logger         *logger.Logger
}

// New creates an idle machine. observer may be nil.
func New(cfg config.DrawConfig, observer Observer, log *logger.Logger) (*Machine, error) {
	m := &Machine{
		tool:     types.DrawTypeNone,
		selected: NoSelection,
		active:   NoSelection,
		observer: observer,
		logger:   log.Named("draw"),
	}

	if err := m.Configure(cfg); err != nil {
		return nil, err
	}

	return m, nil
}

// Configure applies the style and gesture settings used for new items.
func (m *Machine) Configure(cfg config.DrawConfig) error {
	color, err := types.ParseHexColor(cfg.Color)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid draw color", err)
	}

	m.style = types.Style{
		Color:      color,
		LineHeight: cfg.LineHeight,
		DashWidth:  cfg.DashWidth,
		DashSpace:  cfg.DashSpace,
	}
	m.shouldContinue = cfg.ShouldContinue
	m.tolerance = cfg.HitTolerance

	return nil
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Tool returns the armed tool, or DrawTypeNone.
func (m *Machine) Tool() types.DrawType {
	return m.tool
}

// Selected returns the selected item index or NoSelection.
func (m *Machine) Selected() int {
	return m.selected
}

// Len returns the number of items, including one still being authored.
func (m *Machine) Len() int {
	return len(m.items)
}

// Items returns a deep copy of the item list.
func (m *Machine) Items() []types.DrawItem {
	out := make([]types.DrawItem, len(m.items))
	for i, item := range m.items {
		out[i] = item.Clone()
	}

	return out
}

// Item returns a copy of the item at index.
func (m *Machine) Item(index int) optional.Option[types.DrawItem] {
	if index < 0 || index >= len(m.items) {
		return optional.None[types.DrawItem]()
	}

	return optional.Some(m.items[index].Clone())
}

// SelectTool arms a tool. DrawTypeNone disarms and leaves the machine selecting
// existing items, or idle when there are none. An unfinished item is discarded.
func (m *Machine) SelectTool(tool types.DrawType) error {
	if tool != types.DrawTypeNone && !tool.IsValid() {
		return errors.Newf(errors.ErrCodeInvalidDrawType, "unknown draw type %q", tool)
	}

	m.discardActive()
	m.session = nil
	m.clearSelection()
	m.tool = tool

	switch {
	case tool != types.DrawTypeNone:
		m.state = StateToolSelected
	case len(m.items) > 0:
		m.state = StateComplete
	default:
		m.state = StateIdle
	}

	m.logger.Debug("draw tool selected", zap.String("tool", string(tool)), zap.Stringer("state", m.state))

	return nil
}

// HandleTouch feeds one touch event through the machine. It reports whether the
// draw layer consumed the touch; unconsumed touches fall through to scrolling.
// Cancel is handled like touch-up.
func (m *Machine) HandleTouch(ev types.TouchEvent, proj Projector) bool {
	switch ev.Phase {
	case types.TouchPhaseDown:
		return m.touchDown(ev, proj)
	case types.TouchPhaseMove:
		return m.touchMove(ev, proj)
	case types.TouchPhaseUp, types.TouchPhaseCancel:
		return m.touchUp(ev, proj)
	default:
		return false
	}
}

// HitTest finds the newest complete item under the pixel, preferring its points
// over its body. The pixel tolerance is converted through proj on every call.
func (m *Machine) HitTest(px, py float64, proj Projector) optional.Option[Hit] {
	for i := len(m.items) - 1; i >= 0; i-- {
		item := m.items[i]
		if !item.IsComplete() {
			continue
		}

		touch := proj.PixelToValue(item.Pane, px, py)
		tol := proj.Tolerance(item.Pane, m.tolerance)

		if touch.IsNone() || tol.IsNone() {
			continue
		}

		if point, ok := hitItem(item, touch.Unwrap(), tol.Unwrap()); ok {
			return optional.Some(Hit{Index: i, Point: point})
		}
	}

	return optional.None[Hit]()
}

func (m *Machine) touchDown(ev types.TouchEvent, proj Projector) bool {
	m.session = nil

	switch m.state {
	case StateToolSelected:
		pane := proj.PaneAt(ev.Y)
		if pane.IsNone() {
			return false
		}

		pt := proj.PixelToValue(pane.Unwrap(), ev.X, ev.Y)
		if pt.IsNone() {
			return false
		}

		m.items = append(m.items, types.DrawItem{
			ID:     uuid.NewString(),
			Type:   m.tool,
			Pane:   pane.Unwrap(),
			Points: []types.Point{pt.Unwrap()},
			Style:  m.style,
		})
		m.active = len(m.items) - 1
		m.state = StateAccumulating
		m.session = &session{index: m.active, pane: pane.Unwrap(), point: 0, last: pt.Unwrap()}

		return true
	case StateAccumulating:
		item := &m.items[m.active]
		if len(item.Points) >= item.Type.RequiredPoints() {
			return true
		}

		pt := proj.PixelToValue(item.Pane, ev.X, ev.Y)
		if pt.IsNone() {
			return true
		}

		item.Points = append(item.Points, constrain(*item, len(item.Points), pt.Unwrap()))
		m.session = &session{index: m.active, pane: item.Pane, point: len(item.Points) - 1, last: pt.Unwrap()}

		return true
	case StateComplete, StateEditing:
		m.state = StateComplete

		hit := m.HitTest(ev.X, ev.Y, proj)
		if hit.IsNone() {
			m.clearSelection()

			return false
		}

		h := hit.Unwrap()
		item := m.items[h.Index]
		m.selected = h.Index
		m.notifyTouched(h.Index)

		if item.Locked {
			return true
		}

		pt := proj.PixelToValue(item.Pane, ev.X, ev.Y)
		if pt.IsNone() {
			return true
		}

		m.state = StateEditing
		m.session = &session{index: h.Index, pane: item.Pane, point: h.Point, last: pt.Unwrap()}

		return true
	default:
		return false
	}
}

func (m *Machine) touchMove(ev types.TouchEvent, proj Projector) bool {
	if m.session == nil {
		return false
	}

	m.track(ev, proj)

	return true
}

func (m *Machine) touchUp(ev types.TouchEvent, proj Projector) bool {
	s := m.session
	if s == nil {
		return false
	}

	m.track(ev, proj)
	m.session = nil

	switch m.state {
	case StateAccumulating:
		item := m.items[s.index].Clone()
		m.notifyPointComplete(item, s.index)

		if len(item.Points) < item.Type.RequiredPoints() {
			return true
		}

		m.active = NoSelection
		m.notifyComplete(item, s.index)

		if m.shouldContinue {
			m.state = StateToolSelected

			return true
		}

		m.tool = types.DrawTypeNone
		m.state = StateComplete
		m.selected = s.index
		m.notifyTouched(s.index)
	case StateEditing:
		m.state = StateComplete
		if s.moved {
			m.notifyTouched(s.index)
		}
	}

	return true
}

// track moves the point or item held by the session to the touch location.
func (m *Machine) track(ev types.TouchEvent, proj Projector) {
	s := m.session

	pt := proj.PixelToValue(s.pane, ev.X, ev.Y)
	if pt.IsNone() {
		return
	}

	p := pt.Unwrap()
	delta := types.Point{X: p.X - s.last.X, Y: p.Y - s.last.Y}
	if delta.X == 0 && delta.Y == 0 {
		return
	}

	s.last = p
	s.moved = true
	item := &m.items[s.index]

	switch m.state {
	case StateAccumulating:
		item.Points[s.point] = constrain(*item, s.point, p)
	case StateEditing:
		translate(item, s.point, delta)
	}
}

// Add appends a complete item and returns its index. A missing ID is generated
// and a missing pane defaults to the main pane.
func (m *Machine) Add(item types.DrawItem) (int, error) {
	if !item.Type.IsValid() {
		return 0, errors.Newf(errors.ErrCodeInvalidDrawType, "unknown draw type %q", item.Type)
	}

	if len(item.Points) != item.Type.RequiredPoints() {
		return 0, errors.Newf(errors.ErrCodeInvalidDrawItem, "%s needs %d points, got %d",
			item.Type, item.Type.RequiredPoints(), len(item.Points))
	}

	for _, p := range item.Points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return 0, errors.New(errors.ErrCodeInvalidDrawItem, "draw item points must be finite")
		}
	}

	item = item.Clone()
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	if item.Pane == "" {
		item.Pane = types.PaneMain
	}

	m.items = append(m.items, item)
	if m.state == StateIdle && m.tool == types.DrawTypeNone {
		m.state = StateComplete
	}

	return len(m.items) - 1, nil
}

// Remove deletes the item at index and renumbers the selection. An index that
// is out of range is logged and ignored.
func (m *Machine) Remove(index int) error {
	if index < 0 || index >= len(m.items) {
		m.logger.Warn("ignoring removal of unknown draw item", zap.Int("index", index), zap.Int("count", len(m.items)))

		return errors.Newf(errors.ErrCodeDrawItemIndexOutOfRange, "draw item index %d out of range [0,%d)", index, len(m.items))
	}

	m.items = slices.Delete(m.items, index, index+1)

	if m.session != nil {
		switch {
		case m.session.index == index:
			m.session = nil
		case m.session.index > index:
			m.session.index--
		}
	}

	switch {
	case m.active == index:
		m.active = NoSelection
		m.state = StateToolSelected
	case m.active > index:
		m.active--
	}

	switch {
	case m.selected == index:
		m.selected = NoSelection
		m.notifyTouched(NoSelection)
	case m.selected > index:
		m.selected--
		m.notifyTouched(m.selected)
	}

	if m.state == StateEditing && m.session == nil {
		m.state = StateComplete
	}

	if len(m.items) == 0 && m.state == StateComplete {
		m.state = StateIdle
	}

	return nil
}

// Update replaces the style and lock flag of the item at index. Locking an item
// that is being dragged ends the drag.
func (m *Machine) Update(index int, style types.Style, locked bool) error {
	if index < 0 || index >= len(m.items) {
		m.logger.Warn("ignoring update of unknown draw item", zap.Int("index", index), zap.Int("count", len(m.items)))

		return errors.Newf(errors.ErrCodeDrawItemIndexOutOfRange, "draw item index %d out of range [0,%d)", index, len(m.items))
	}

	m.items[index].Style = style
	m.items[index].Locked = locked

	if locked && m.state == StateEditing && m.session != nil && m.session.index == index {
		m.session = nil
		m.state = StateComplete
	}

	return nil
}

// Trash removes the selected item, or the unfinished one, and goes idle.
// Locked items can be trashed. It reports whether anything was removed.
func (m *Machine) Trash() bool {
	target := m.selected
	if target == NoSelection {
		target = m.active
	}

	if target == NoSelection {
		return false
	}

	_ = m.Remove(target)
	m.reset()

	return true
}

// Clear removes every item and goes idle.
func (m *Machine) Clear() {
	hadSelection := m.selected != NoSelection

	m.items = nil
	m.reset()

	if hadSelection {
		m.notifyTouched(NoSelection)
	}
}

// Fix discards an unfinished item and disarms the tool.
func (m *Machine) Fix() {
	m.discardActive()
	m.reset()
}

// ShiftX moves every item k bars to the right, used after k bars were
// prepended so annotations stay on their bars.
func (m *Machine) ShiftX(k int) {
	if k == 0 {
		return
	}

	dx := float64(k)
	for i := range m.items {
		for j := range m.items[i].Points {
			m.items[i].Points[j].X += dx
		}
	}

	if m.session != nil {
		m.session.last.X += dx
	}
}

func (m *Machine) reset() {
	m.session = nil
	m.active = NoSelection
	m.selected = NoSelection
	m.tool = types.DrawTypeNone
	m.state = StateIdle
}

func (m *Machine) discardActive() {
	if m.active == NoSelection {
		return
	}

	index := m.active
	m.active = NoSelection
	m.items = slices.Delete(m.items, index, index+1)

	if m.selected > index {
		m.selected--
	}
}

func (m *Machine) clearSelection() {
	if m.selected == NoSelection {
		return
	}

	m.selected = NoSelection
	m.notifyTouched(NoSelection)
}

func (m *Machine) notifyTouched(index int) {
	if m.observer == nil {
		return
	}

	m.observer.OnDrawItemTouched(m.Item(index), index)
}

func (m *Machine) notifyPointComplete(item types.DrawItem, index int) {
	if m.observer != nil {
		m.observer.OnDrawPointComplete(item, index, len(item.Points))
	}
}

func (m *Machine) notifyComplete(item types.DrawItem, index int) {
	if m.observer != nil {
		m.observer.OnDrawItemComplete(item, index)
	}
}

// constrain snaps a point placed at position i so horizontal and vertical lines
// stay axis-aligned.
func constrain(item types.DrawItem, i int, p types.Point) types.Point {
	if i == 0 || len(item.Points) == 0 {
		return p
	}

	switch item.Type {
	case types.DrawTypeHorizontalLine:
		p.Y = item.Points[0].Y
	case types.DrawTypeVerticalLine:
		p.X = item.Points[0].X
	}

	return p
}

// translate moves one point, or the whole item when point is -1. Dragging a
// point of an axis-aligned line moves the shared coordinate of every point.
func translate(item *types.DrawItem, point int, delta types.Point) {
	pts := item.Points

	if point < 0 {
		for i := range pts {
			pts[i].X += delta.X
			pts[i].Y += delta.Y
		}

		return
	}

	switch item.Type {
	case types.DrawTypeHorizontalLine:
		for i := range pts {
			pts[i].Y += delta.Y
		}

		pts[point].X += delta.X
	case types.DrawTypeVerticalLine:
		for i := range pts {
			pts[i].X += delta.X
		}

		pts[point].Y += delta.Y
	default:
		pts[point].X += delta.X
		pts[point].Y += delta.Y
	}
}
