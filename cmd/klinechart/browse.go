package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rxtech-lab/argo-kline/internal/chart"
	"github.com/rxtech-lab/argo-kline/internal/types"
	"github.com/urfave/cli/v3"
)

func browseCommand() *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "Browse bars and their indicators in the terminal",
		Flags: []cli.Flag{
			dataFlag(),
			configFlag(),
		},
		Action: browseAction,
	}
}

func browseAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	m := NewModel(cfg, func() ([]types.Bar, error) {
		c, err := chartFromData(cmd, chart.Options{Config: cfg})
		if err != nil {
			return nil, err
		}

		return c.Store().Bars(), nil
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()

	return err
}
