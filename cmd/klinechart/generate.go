package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rxtech-lab/argo-kline/internal/dataset"
	"github.com/rxtech-lab/argo-kline/mocks"
	"github.com/urfave/cli/v3"
)

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Write synthetic bars to a CSV file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "out",
				Aliases:  []string{"o"},
				Usage:    "Output CSV `FILE`",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "count",
				Usage: "Number of bars",
				Value: 500,
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "Random seed; the same seed writes the same bars",
				Value: 42,
			},
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "Time between bars",
				Value: time.Minute,
			},
			&cli.FloatFlag{
				Name:  "price",
				Usage: "Opening price of the first bar",
				Value: 100,
			},
		},
		Action: generateAction,
	}
}

func generateAction(ctx context.Context, cmd *cli.Command) error {
	cfg := mocks.DefaultConfig()
	cfg.Count = int(cmd.Int("count"))
	cfg.Interval = cmd.Duration("interval")
	cfg.InitialPrice = cmd.Float("price")

	bars := mocks.NewDataGenerator(int64(cmd.Int("seed"))).Generate(cfg)

	path := cmd.String("out")

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := dataset.Write(f, bars); err != nil {
		return fmt.Errorf("failed to write bars: %w", err)
	}

	_, err = fmt.Fprintf(cmd.Root().Writer, "Wrote %d bars to %s\n", len(bars), path)

	return err
}
