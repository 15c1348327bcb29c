package main

import (
	"context"
	"log"
	"os"

	"github.com/rxtech-lab/argo-kline/internal/chart"
	"github.com/rxtech-lab/argo-kline/internal/config"
	"github.com/rxtech-lab/argo-kline/internal/dataset"
	"github.com/rxtech-lab/argo-kline/internal/logger"
	"github.com/rxtech-lab/argo-kline/internal/version"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap/zapcore"
)

// Flags are built per command because a flag value keeps its parsed state.
func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to a chart config `FILE` (YAML). Defaults are used when omitted.",
	}
}

func dataFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "data",
		Aliases:  []string{"d"},
		Usage:    "Path to a bar `CSV` with time,open,high,low,close,volume columns",
		Required: true,
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "klinechart",
		Usage:   "Compute indicators and render candlestick charts from bar data",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log debug output",
			},
		},
		Commands: []*cli.Command{
			indicatorsCommand(),
			renderCommand(),
			replayCommand(),
			browseCommand(),
			generateCommand(),
			schemaCommand(),
			versionCommand(),
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// newLogger logs warnings only unless --verbose is set, keeping command output readable.
func newLogger(cmd *cli.Command) (*logger.Logger, error) {
	level := zapcore.WarnLevel
	if cmd.Bool("verbose") {
		level = zapcore.DebugLevel
	}

	return logger.NewLoggerWithLevel(level)
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	path := cmd.String("config")
	if path == "" {
		return config.Default(), nil
	}

	return config.Load(path)
}

// loadChart builds a controller from the command flags and appends every bar
// of the data file.
func loadChart(cmd *cli.Command, opts chart.Options) (*chart.Controller, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	opts.Config = cfg

	return chartFromData(cmd, opts)
}

// chartFromData builds a controller with opts.Config and appends every bar of
// the data file.
func chartFromData(cmd *cli.Command, opts chart.Options) (*chart.Controller, error) {
	log, err := newLogger(cmd)
	if err != nil {
		return nil, err
	}

	bars, err := dataset.ReadFile(cmd.String("data"))
	if err != nil {
		return nil, err
	}

	opts.Logger = log

	c, err := chart.New(opts)
	if err != nil {
		return nil, err
	}

	if err := c.AppendCandlesticks(bars); err != nil {
		return nil, err
	}

	return c, nil
}
