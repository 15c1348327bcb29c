package draw

import (
	"math"

	"github.com/rxtech-lab/argo-kline/internal/types"
)

// Segment is a piece of an item's body. A ray is unbounded past B.
type Segment struct {
	A, B types.Point
	Ray  bool
}

// Segments returns the body of a complete item in value space. Incomplete items
// yield the polyline through the points placed so far.
func Segments(item types.DrawItem) []Segment {
	p := item.Points
	if len(p) < 2 {
		return nil
	}

	switch item.Type {
	case types.DrawTypeRay:
		return []Segment{{A: p[0], B: p[1], Ray: true}}
	case types.DrawTypeRectangle:
		c := rectCorners(p[0], p[1])

		return closed(c[:])
	case types.DrawTypeParallelChannel:
		if len(p) < 3 {
			break
		}

		d := channelOffset(p[0], p[1], p[2])

		return []Segment{
			{A: p[0], B: p[1]},
			{A: add(p[0], d), B: add(p[1], d)},
		}
	case types.DrawTypeParallelogram:
		if len(p) < 3 {
			break
		}

		return closed([]types.Point{p[0], p[1], p[2], FourthCorner(p[0], p[1], p[2])})
	}

	out := make([]Segment, 0, len(p)-1)
	for i := 1; i < len(p); i++ {
		out = append(out, Segment{A: p[i-1], B: p[i]})
	}

	return out
}

// FourthCorner completes the parallelogram a, b, c.
func FourthCorner(a, b, c types.Point) types.Point {
	return types.Point{X: a.X + c.X - b.X, Y: a.Y + c.Y - b.Y}
}

// channelOffset returns the translation from the base line a-b to the parallel
// line through c. The offset is vertical unless the base line is vertical.
func channelOffset(a, b, c types.Point) types.Point {
	if a.X == b.X {
		return types.Point{X: c.X - a.X}
	}

	slope := (b.Y - a.Y) / (b.X - a.X)

	return types.Point{Y: c.Y - (a.Y + slope*(c.X-a.X))}
}

func rectCorners(a, b types.Point) [4]types.Point {
	return [4]types.Point{a, {X: b.X, Y: a.Y}, b, {X: a.X, Y: b.Y}}
}

func closed(pts []types.Point) []Segment {
	out := make([]Segment, 0, len(pts))
	for i := range pts {
		out = append(out, Segment{A: pts[i], B: pts[(i+1)%len(pts)]})
	}

	return out
}

func add(a, b types.Point) types.Point {
	return types.Point{X: a.X + b.X, Y: a.Y + b.Y}
}

// scaled divides a point by the tolerance so a unit circle is the hit area.
func scaled(p, tol types.Point) types.Point {
	return types.Point{X: p.X / tol.X, Y: p.Y / tol.Y}
}

// distance returns the distance from p to s, with all coordinates already scaled.
func (s Segment) distance(p types.Point) float64 {
	dx, dy := s.B.X-s.A.X, s.B.Y-s.A.Y
	lenSq := dx*dx + dy*dy

	if lenSq == 0 {
		return math.Hypot(p.X-s.A.X, p.Y-s.A.Y)
	}

	t := ((p.X-s.A.X)*dx + (p.Y-s.A.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 && !s.Ray {
		t = 1
	}

	return math.Hypot(p.X-(s.A.X+t*dx), p.Y-(s.A.Y+t*dy))
}

// Hit is the part of an item under a touch.
type Hit struct {
	Index int
	// Point is the index of the grabbed point, or -1 when the body was hit.
	Point int
}

// hitItem tests a value-space touch against one item. tol holds the value-space
// radii of the pixel tolerance.
func hitItem(item types.DrawItem, touch, tol types.Point) (int, bool) {
	if tol.X <= 0 || tol.Y <= 0 {
		return 0, false
	}

	t := scaled(touch, tol)

	for i, p := range item.Points {
		if math.Hypot(t.X-p.X/tol.X, t.Y-p.Y/tol.Y) <= 1 {
			return i, true
		}
	}

	for _, s := range Segments(item) {
		s.A, s.B = scaled(s.A, tol), scaled(s.B, tol)
		if s.distance(t) <= 1 {
			return -1, true
		}
	}

	return 0, false
}
