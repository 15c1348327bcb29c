package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rxtech-lab/argo-kline/internal/chart"
	"github.com/rxtech-lab/argo-kline/internal/format"
	"github.com/rxtech-lab/argo-kline/internal/types"
	"github.com/urfave/cli/v3"
)

func indicatorsCommand() *cli.Command {
	return &cli.Command{
		Name:  "indicators",
		Usage: "Print OHLCV and indicator values of the newest bars",
		Flags: []cli.Flag{
			dataFlag(),
			configFlag(),
			&cli.IntFlag{
				Name:    "last",
				Aliases: []string{"n"},
				Usage:   "Number of newest bars to print",
				Value:   20,
			},
			&cli.StringFlag{
				Name:  "primary",
				Usage: "Main pane indicator columns (ma, boll, none). Defaults to the config layout.",
			},
			&cli.StringFlag{
				Name:  "secondary",
				Usage: "Secondary pane indicator columns (macd, kdj, rsi, wr, none). Defaults to the config layout.",
			},
		},
		Action: indicatorsAction,
	}
}

func indicatorsAction(ctx context.Context, cmd *cli.Command) error {
	c, err := loadChart(cmd, chart.Options{})
	if err != nil {
		return err
	}

	cfg := c.Config()

	primary := cfg.Layout.PrimaryIndicator
	if v := cmd.String("primary"); v != "" {
		primary = types.IndicatorType(v)
	}

	secondary := cfg.Layout.SecondaryIndicator
	if v := cmd.String("secondary"); v != "" {
		secondary = types.IndicatorType(v)
	}

	n := c.Store().Len()
	last := min(int(cmd.Int("last")), n)
	bars := c.Store().Snapshot(n-last, n)

	_, err = fmt.Fprintln(cmd.Root().Writer, barTable(format.New(cfg), bars, primary, secondary))

	return err
}

// barTable renders bars as a bordered text table.
func barTable(f *format.Formatter, bars []types.Bar, primary, secondary types.IndicatorType) string {
	rows := make([][]string, 0, len(bars))
	for _, b := range bars {
		rows = append(rows, f.Row(b, primary, secondary))
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(f.Columns(primary, secondary)...).
		Rows(rows...).
		String()
}
