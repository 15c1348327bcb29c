package render

import (
	"github.com/rxtech-lab/argo-kline/internal/config"
	"github.com/rxtech-lab/argo-kline/internal/types"
	"github.com/rxtech-lab/argo-kline/pkg/errors"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type palette struct {
	background drawing.Color
	grid       drawing.Color
	text       drawing.Color
	increase   drawing.Color
	decrease   drawing.Color
	minute     drawing.Color
	closePrice drawing.Color
	series     []drawing.Color
}

func newPalette(c config.ColorConfig) (palette, error) {
	var (
		p   palette
		err error
	)

	fields := []struct {
		hex string
		dst *drawing.Color
	}{
		{c.Background, &p.background},
		{c.Grid, &p.grid},
		{c.Text, &p.text},
		{c.Increase, &p.increase},
		{c.Decrease, &p.decrease},
		{c.MinuteLine, &p.minute},
		{c.ClosePrice, &p.closePrice},
	}

	for _, f := range fields {
		if *f.dst, err = parseColor(f.hex); err != nil {
			return palette{}, err
		}
	}

	for _, hex := range c.Series {
		col, err := parseColor(hex)
		if err != nil {
			return palette{}, err
		}

		p.series = append(p.series, col)
	}

	if len(p.series) == 0 {
		p.series = []drawing.Color{p.text}
	}

	return p, nil
}

// seriesColor returns the color of the i-th line of a group.
func (p palette) seriesColor(i int) drawing.Color {
	return p.series[i%len(p.series)]
}

func parseColor(hex string) (drawing.Color, error) {
	c, err := types.ParseHexColor(hex)
	if err != nil {
		return drawing.Color{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid palette color", err)
	}

	return toDrawing(c), nil
}

func toDrawing(c types.Color) drawing.Color {
	return drawing.Color{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: channel(c.A)}
}

func channel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}
