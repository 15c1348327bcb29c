package types

// TouchPhase is the phase of a single-pointer touch event.
type TouchPhase string

const (
	TouchPhaseDown   TouchPhase = "down"
	TouchPhaseMove   TouchPhase = "move"
	TouchPhaseUp     TouchPhase = "up"
	TouchPhaseCancel TouchPhase = "cancel"
)

// TouchEvent is a touch in view pixel coordinates.
type TouchEvent struct {
	Phase TouchPhase
	X     float64
	Y     float64
}

// Rect is a pixel rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether the pixel (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return r.Width > 0 && r.Height > 0 &&
		x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// ChartTouch describes a touch delivered to the host.
type ChartTouch struct {
	X                   float64 `json:"x"`
	Y                   float64 `json:"y"`
	IsOnClosePriceLabel bool    `json:"isOnClosePriceLabel"`
	ClosePriceFrame     Rect    `json:"closePriceFrame"`
}
