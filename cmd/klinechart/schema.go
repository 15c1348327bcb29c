package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rxtech-lab/argo-kline/internal/config"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const (
	schemaName       = "kline-chart-config.json"
	sampleConfigName = "kline-chart-config.yaml"
)

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Write the config JSON schema and a sample config",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Usage: "Output `DIR`",
				Value: "./config",
			},
		},
		Action: schemaAction,
	}
}

func schemaAction(ctx context.Context, cmd *cli.Command) error {
	cfg := config.Default()

	schemaJSON, err := cfg.GenerateSchemaJSON()
	if err != nil {
		return err
	}

	dir := cmd.String("dir")
	schemaPath := filepath.Join(dir, schemaName)
	sampleConfigPath := filepath.Join(dir, sampleConfigName)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	if err := os.WriteFile(schemaPath, []byte(schemaJSON), 0o644); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}

	out := cmd.Root().Writer

	// an existing sample config is left alone
	if _, err := os.Stat(sampleConfigPath); os.IsNotExist(err) {
		yamlBytes, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal sample config: %w", err)
		}

		yamlBytes = append([]byte("# yaml-language-server: $schema="+schemaName+"\n"), yamlBytes...)

		if err := os.WriteFile(sampleConfigPath, yamlBytes, 0o644); err != nil {
			return fmt.Errorf("failed to write sample config: %w", err)
		}

		fmt.Fprintf(out, "Sample config written to %s\n", sampleConfigPath)
	}

	_, err = fmt.Fprintf(out, "Schema written to %s\n", schemaPath)

	return err
}
