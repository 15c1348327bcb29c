package main

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rxtech-lab/argo-kline/internal/chart"
	"github.com/rxtech-lab/argo-kline/internal/config"
	"github.com/rxtech-lab/argo-kline/internal/dataset"
	"github.com/rxtech-lab/argo-kline/internal/logger"
	"github.com/rxtech-lab/argo-kline/internal/types"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func replayCommand() *cli.Command {
	return &cli.Command{
		Name:  "replay",
		Usage: "Stream the bars through a live chart tick by tick and render the final frame. " +
			"Ticks carry no indicators, so every tick recomputes them from OHLCV regardless of the config's replace_last_policy",
		Flags: append([]cli.Flag{
			dataFlag(),
			configFlag(),
			outFlag(),
			&cli.IntFlag{
				Name:  "history",
				Usage: "Bars loaded as history before the replay starts",
				Value: 100,
			},
			&cli.IntFlag{
				Name:  "ticks",
				Usage: "Live updates per replayed bar",
				Value: 4,
			},
		}, sizeFlags()...),
		Action: replayAction,
	}
}

// frameCounter stands in for the host display loop and counts frame requests.
type frameCounter struct {
	requested atomic.Int64
}

func (f *frameCounter) RequestFrame() {
	f.requested.Add(1)
}

func replayAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := newLogger(cmd)
	if err != nil {
		return err
	}

	bars, err := dataset.ReadFile(cmd.String("data"))
	if err != nil {
		return err
	}

	frames := &frameCounter{}

	c, err := chart.New(chart.Options{Config: replayConfig(cfg), Logger: log, Requester: frames})
	if err != nil {
		return err
	}

	if err := c.Resize(cmd.Float("width"), cmd.Float("height")); err != nil {
		return err
	}

	history := min(max(int(cmd.Int("history")), 1), len(bars))
	if err := c.AppendCandlesticks(bars[:history]); err != nil {
		return err
	}

	live := bars[history:]
	ticks := max(int(cmd.Int("ticks")), 1)

	progress := progressbar.NewOptions(len(live),
		progressbar.OptionSetDescription("Replaying bars"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(cmd.Root().ErrWriter),
	)

	rendered, err := replay(ctx, c, live, ticks, log, func() { _ = progress.Add(1) })
	if err != nil {
		return err
	}

	_ = progress.Finish()

	path := cmd.String("out")
	if err := writeImage(c, path); err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.Root().Writer, "Replayed %d bars, %d frame requests, %d frames; chart written to %s\n",
		len(live), frames.requested.Load(), rendered+1, path)

	return err
}

// replayConfig returns cfg with replace-last recomputing absent groups. A
// carried-over group would keep the values of each bar's opening tick.
func replayConfig(cfg *config.Config) *config.Config {
	out := *cfg
	out.ReplaceLastPolicy = config.ReplaceLastRecompute

	return &out
}

// replay feeds each bar to c as an append of its first tick followed by
// replace-last updates, rendering a frame whenever the chart is dirty. It
// returns the number of frames rendered.
func replay(ctx context.Context, c *chart.Controller, live []types.BarInput, ticks int, log *logger.Logger, onBar func()) (int, error) {
	var rendered int

	for _, bar := range live {
		if err := ctx.Err(); err != nil {
			return rendered, err
		}

		for i, tick := range ticksOf(bar, ticks) {
			var err error
			if i == 0 {
				err = c.AppendCandlesticks([]types.BarInput{tick})
			} else {
				err = c.UpdateLastCandlestick(tick)
			}

			if err != nil {
				log.Warn("replay tick rejected", zap.Int64("timestamp", tick.Timestamp), zap.Error(err))

				break
			}

			if c.Dirty() {
				c.Frame()
				rendered++
			}
		}

		onBar()
	}

	return rendered, nil
}

// ticksOf splits a bar into n cumulative updates that end with the bar itself.
// The first update opens the bar at its open price.
func ticksOf(bar types.BarInput, n int) []types.BarInput {
	out := make([]types.BarInput, 0, n)

	for i := 1; i <= n; i++ {
		frac := float64(i) / float64(n)
		price := bar.Open + (bar.Close-bar.Open)*frac

		tick := types.BarInput{
			Timestamp: bar.Timestamp,
			Open:      bar.Open,
			High:      max(bar.Open, price),
			Low:       min(bar.Open, price),
			Close:     price,
			Volume:    bar.Volume * frac,
		}

		if i == n {
			tick = bar
		}

		out = append(out, tick)
	}

	return out
}
