package main

import (
	"fmt"
	"log/slog"

	"github.com/helixml/delve"
	"github.com/helixml/delve/internal/log"
	"github.com/helixml/delve/internal/mcp"
	"github.com/spf13/cobra"
)

func stdioCmd() *cobra.Command {
	var (
		envFile   string
		reposFile string
	)

	cmd := &cobra.Command{
		Use:   "stdio",
		Short: "Start MCP server on stdio",
		Long: `Start the MCP (Model Context Protocol) server on stdio.

This lets assistants read line ranges from registered repositories.
Configuration is loaded from environment variables and .env file. Logs go
to stderr so stdout stays reserved for the protocol.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runStdio(envFile, reposFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")
	cmd.Flags().StringVar(&reposFile, "repos", "", "YAML or JSON file of repositories to register")

	return cmd
}

func runStdio(envFile, reposFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	cfg = applyServeOverrides(cfg, "", 0, reposFile)

	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	logger := log.Configure(cfg)
	logger.Info("starting MCP server",
		slog.String("version", version),
		slog.String("data_dir", cfg.DataDir()),
	)

	client, err := delve.New(clientOptions(cfg, logger)...)
	if err != nil {
		return fmt.Errorf("create delve client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error("failed to close delve client", slog.Any("error", err))
		}
	}()

	return mcp.NewServer(client.Files, client.Repositories, version, logger).ServeStdio()
}
