package main

import (
	"log/slog"

	"github.com/helixml/delve"
	"github.com/helixml/delve/internal/config"
)

// clientOptions returns the delve.Option slice derived from AppConfig.
func clientOptions(cfg config.AppConfig, logger *slog.Logger) []delve.Option {
	opts := []delve.Option{
		delve.WithDataDir(cfg.DataDir()),
		delve.WithDatabaseURL(cfg.DBURL()),
		delve.WithLogger(logger),
		delve.WithViewConfig(cfg.View()),
	}
	if keys := cfg.APIKeys(); len(keys) > 0 {
		opts = append(opts, delve.WithAPIKeys(keys...))
	}
	if f := cfg.ReposFile(); f != "" {
		opts = append(opts, delve.WithReposFile(f))
	}
	return opts
}
