package types

import (
	"fmt"
	"strconv"
	"strings"
)

// DrawType is the shape of a draw item.
type DrawType string

const (
	DrawTypeNone            DrawType = "none"
	DrawTypeLine            DrawType = "line"
	DrawTypeHorizontalLine  DrawType = "horizontal_line"
	DrawTypeVerticalLine    DrawType = "vertical_line"
	DrawTypeRay             DrawType = "ray"
	DrawTypeParallelChannel DrawType = "parallel_channel"
	DrawTypeRectangle       DrawType = "rectangle"
	DrawTypeParallelogram   DrawType = "parallelogram"
)

// RequiredPoints returns how many points complete a shape, or 0 for unknown types.
func (d DrawType) RequiredPoints() int {
	switch d {
	case DrawTypeLine, DrawTypeHorizontalLine, DrawTypeVerticalLine, DrawTypeRay, DrawTypeRectangle:
		return 2
	case DrawTypeParallelChannel, DrawTypeParallelogram:
		return 3
	default:
		return 0
	}
}

// IsValid reports whether d names a drawable shape.
func (d DrawType) IsValid() bool {
	return d.RequiredPoints() > 0
}

// Pane identifies one of the stacked chart panes.
type Pane string

const (
	PaneMain      Pane = "main"
	PaneVolume    Pane = "volume"
	PaneSecondary Pane = "secondary"
)

// Point is a value-space coordinate. X is a fractional bar index and Y a value
// in the pane the point belongs to.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Color is an RGBA color with components normalized to [0,1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// ParseHexColor parses "#RGB", "#RGBA", "#RRGGBB" or "#RRGGBBAA".
func ParseHexColor(hex string) (Color, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) == 3 || len(s) == 4 {
		var b strings.Builder
		for _, r := range s {
			b.WriteRune(r)
			b.WriteRune(r)
		}

		s = b.String()
	}

	if len(s) != 6 && len(s) != 8 {
		return Color{}, fmt.Errorf("invalid hex color %q", hex)
	}

	if len(s) == 6 {
		s += "ff"
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}

	return Color{
		R: float64((v>>24)&0xff) / 255,
		G: float64((v>>16)&0xff) / 255,
		B: float64((v>>8)&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// Hex formats the color as "#RRGGBBAA".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B), channel(c.A))
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}

	if v >= 1 {
		return 255
	}

	return uint8(v*255 + 0.5)
}

// Style is the stroke style of a draw item.
type Style struct {
	Color      Color   `json:"color"`
	LineHeight float64 `json:"lineHeight"`
	DashWidth  float64 `json:"dashWidth"`
	DashSpace  float64 `json:"dashSpace"`
}

// IsDashed reports whether the stroke uses a dash pattern.
func (s Style) IsDashed() bool {
	return s.DashWidth > 0 && s.DashSpace > 0
}

// DrawItem is a value-space annotation owned by the chart.
type DrawItem struct {
	ID     string   `json:"id"`
	Type   DrawType `json:"type"`
	Pane   Pane     `json:"pane"`
	Points []Point  `json:"points"`
	Style  Style    `json:"style"`
	Locked bool     `json:"locked"`
}

// IsComplete reports whether the item has all points its shape requires.
func (d DrawItem) IsComplete() bool {
	return d.Type.IsValid() && len(d.Points) >= d.Type.RequiredPoints()
}

// Clone returns a deep copy.
func (d DrawItem) Clone() DrawItem {
	d.Points = append([]Point(nil), d.Points...)

	return d
}
