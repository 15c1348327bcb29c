package draw

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-kline/internal/types"
)

// State is the state of the draw tool.
type State int

const (
	// StateIdle means no drawing mode is active; touches fall through.
	StateIdle State = iota
	// StateToolSelected means a tool is armed and the next touch starts an item.
	StateToolSelected
	// StateAccumulating means an item has some but not all of its points.
	StateAccumulating
	// StateComplete means touches only hit-test existing items for selection.
	StateComplete
	// StateEditing means an unlocked item is being dragged.
	StateEditing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateToolSelected:
		return "tool_selected"
	case StateAccumulating:
		return "accumulating"
	case StateComplete:
		return "complete"
	case StateEditing:
		return "editing"
	default:
		return "unknown"
	}
}

// NoSelection is the index reported when no item is selected.
const NoSelection = -1

// Observer receives draw events synchronously from the state machine.
type Observer interface {
	// OnDrawItemTouched fires when the selection changes or a drag is committed.
	// A cleared selection reports None with index NoSelection.
	OnDrawItemTouched(item optional.Option[types.DrawItem], index int)
	// OnDrawItemComplete fires once when an item receives its last required point.
	OnDrawItemComplete(item types.DrawItem, index int)
	// OnDrawPointComplete fires when a placed point is committed on touch-up.
	OnDrawPointComplete(item types.DrawItem, index int, pointCount int)
}

// Projector converts view pixels to value space. viewport.Geometry implements it.
type Projector interface {
	PaneAt(y float64) optional.Option[types.Pane]
	PixelToValue(pane types.Pane, px, py float64) optional.Option[types.Point]
	Tolerance(pane types.Pane, px float64) optional.Option[types.Point]
}

// session is the gesture in progress. It is dropped on touch-up or cancel.
type session struct {
	index int
	pane  types.Pane
	// point is the point being moved, or -1 for a whole-item drag.
	point int
	last  types.Point
	moved bool
}
