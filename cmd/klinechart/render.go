package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rxtech-lab/argo-kline/internal/chart"
	"github.com/urfave/cli/v3"
	gochart "github.com/wcharczuk/go-chart/v2"
)

func outFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "out",
		Aliases:  []string{"o"},
		Usage:    "Output image `FILE`; a .svg extension writes SVG, anything else PNG",
		Required: true,
	}
}

func sizeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.FloatFlag{
			Name:  "width",
			Usage: "Image width in pixels",
			Value: 800,
		},
		&cli.FloatFlag{
			Name:  "height",
			Usage: "Image height in pixels",
			Value: 600,
		},
	}
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Render the bars as a candlestick chart image",
		Flags: append([]cli.Flag{
			dataFlag(),
			configFlag(),
			outFlag(),
			&cli.FloatFlag{
				Name:  "scroll",
				Usage: "Pixels to scroll back from the newest bar",
			},
			&cli.FloatFlag{
				Name:  "zoom",
				Usage: "Bar width scale factor",
				Value: 1,
			},
		}, sizeFlags()...),
		Action: renderAction,
	}
}

func renderAction(ctx context.Context, cmd *cli.Command) error {
	c, err := loadChart(cmd, chart.Options{})
	if err != nil {
		return err
	}

	if err := c.Resize(cmd.Float("width"), cmd.Float("height")); err != nil {
		return err
	}

	// the first frame pins the view to the newest bar before scrolling back
	c.Frame()
	c.Zoom(cmd.Float("zoom"), cmd.Float("width"))
	c.ScrollBy(-cmd.Float("scroll"))

	path := cmd.String("out")
	if err := writeImage(c, path); err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.Root().Writer, "Chart written to %s\n", path)

	return err
}

func writeImage(c *chart.Controller, path string) error {
	provider := gochart.PNG
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		provider = gochart.SVG
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	return c.RenderTo(f, provider)
}
