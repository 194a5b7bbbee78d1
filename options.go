package delve

import (
	"io"
	"log/slog"

	"github.com/helixml/delve/application/service"
	"github.com/helixml/delve/domain/fileview"
	"github.com/helixml/delve/internal/config"
)

// clientConfig holds configuration for Client construction.
type clientConfig struct {
	dbURL        string
	dataDir      string
	logger       *slog.Logger
	apiKeys      []string
	layout       fileview.Layout
	reposFile    string
	repositories []service.RepositoryParams
	closers      []io.Closer
}

func newClientConfig() *clientConfig {
	return &clientConfig{
		dataDir: config.DefaultDataDir(),
		layout:  fileview.DefaultLayout(),
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithSQLite configures a SQLite database at path.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.dbURL = "sqlite:///" + path
	}
}

// WithPostgres configures a PostgreSQL database.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.dbURL = dsn
	}
}

// WithDatabaseURL configures the database from a sqlite:/// or postgres:// URL.
func WithDatabaseURL(url string) Option {
	return func(c *clientConfig) {
		c.dbURL = url
	}
}

// WithDataDir sets the directory holding local state.
func WithDataDir(dir string) Option {
	return func(c *clientConfig) {
		c.dataDir = dir
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithAPIKeys sets the keys accepted for mutating API requests.
func WithAPIKeys(keys ...string) Option {
	return func(c *clientConfig) {
		c.apiKeys = append(c.apiKeys, keys...)
	}
}

// WithLayout sets the line layout used for scroll computations.
func WithLayout(layout fileview.Layout) Option {
	return func(c *clientConfig) {
		c.layout = layout
	}
}

// WithViewConfig sets the line layout from view configuration.
func WithViewConfig(v config.ViewConfig) Option {
	return func(c *clientConfig) {
		c.layout = fileview.Layout{LineHeight: v.LineHeight(), HeaderHeight: v.HeaderHeight()}
	}
}

// WithReposFile seeds repositories from a YAML or JSON file on startup.
func WithReposFile(path string) Option {
	return func(c *clientConfig) {
		c.reposFile = path
	}
}

// WithRepositories seeds repositories on startup.
func WithRepositories(params ...service.RepositoryParams) Option {
	return func(c *clientConfig) {
		c.repositories = append(c.repositories, params...)
	}
}

// WithCloser registers a resource to be closed when the Client shuts down.
func WithCloser(c io.Closer) Option {
	return func(cfg *clientConfig) {
		cfg.closers = append(cfg.closers, c)
	}
}
