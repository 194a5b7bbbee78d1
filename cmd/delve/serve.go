package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/helixml/delve"
	"github.com/helixml/delve/infrastructure/api"
	"github.com/helixml/delve/internal/config"
	"github.com/helixml/delve/internal/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var (
		envFile   string
		host      string
		port      int
		reposFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server for the file view, the v1 API and MCP.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  HOST                     Server host to bind to (default: 0.0.0.0)
  PORT                     Server port to listen on (default: 8080)
  DATA_DIR                 Data directory (default: ~/.delve)
  DB_URL                   Database URL (default: sqlite:///{data_dir}/delve.db)
  LOG_LEVEL                Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT               Log format: pretty, json (default: pretty)
  REPOS_FILE               YAML or JSON file of repositories to register
  CORS_ORIGINS             Comma-separated list of allowed origins
  API_KEYS                 Comma-separated list of keys for mutating requests
  REQUEST_TIMEOUT_SECONDS  API request timeout (default: 60)
  VIEW_LINE_HEIGHT         Rendered line height in pixels (default: 20)
  VIEW_HEADER_HEIGHT       Fixed header height in pixels (default: 0)`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), envFile, host, port, reposFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")
	cmd.Flags().StringVar(&reposFile, "repos", "", "YAML or JSON file of repositories to register")

	return cmd
}

func runServe(parent context.Context, envFile, host string, port int, reposFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	cfg = applyServeOverrides(cfg, host, port, reposFile)

	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	logger := log.Configure(cfg)
	attrs := append([]slog.Attr{slog.String("version", version)}, cfg.LogAttrs()...)
	logger.LogAttrs(context.Background(), slog.LevelInfo, "starting delve", attrs...)

	client, err := delve.New(clientOptions(cfg, logger)...)
	if err != nil {
		return fmt.Errorf("create delve client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error("failed to close delve client", slog.Any("error", err))
		}
	}()

	apiServer := api.NewAPIServer(client, client.APIKeys(),
		api.WithCORSOrigins(cfg.CORSOrigins()),
		api.WithRequestTimeout(cfg.RequestTimeout()),
		api.WithVersion(version),
	)

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return apiServer.ListenAndServe(cfg.Addr())
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := apiServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// applyServeOverrides applies command line flag overrides to the config.
func applyServeOverrides(cfg config.AppConfig, host string, port int, reposFile string) config.AppConfig {
	var opts []config.AppConfigOption

	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}
	if reposFile != "" {
		opts = append(opts, config.WithReposFile(reposFile))
	}

	return cfg.Apply(opts...)
}
