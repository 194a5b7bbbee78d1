// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultHost           = "0.0.0.0"
	DefaultPort           = 8080
	DefaultLogLevel       = "INFO"
	DefaultLineHeight     = 20.0
	DefaultHeaderHeight   = 0.0
	DefaultRequestTimeout = 60 * time.Second
	DefaultDBFile         = "delve.db"
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// ViewConfig holds the line layout the file view assumes when computing
// scroll positions.
type ViewConfig struct {
	lineHeight   float64
	headerHeight float64
}

// NewViewConfig creates a ViewConfig with defaults.
func NewViewConfig() ViewConfig {
	return ViewConfig{
		lineHeight:   DefaultLineHeight,
		headerHeight: DefaultHeaderHeight,
	}
}

// LineHeight returns the height of one rendered line.
func (v ViewConfig) LineHeight() float64 { return v.lineHeight }

// HeaderHeight returns the height of content above the first line.
func (v ViewConfig) HeaderHeight() float64 { return v.headerHeight }

// WithLineHeight returns a copy with the line height set. Non-positive
// values are ignored.
func (v ViewConfig) WithLineHeight(h float64) ViewConfig {
	if h > 0 {
		v.lineHeight = h
	}
	return v
}

// WithHeaderHeight returns a copy with the header height set. Negative
// values are ignored.
func (v ViewConfig) WithHeaderHeight(h float64) ViewConfig {
	if h >= 0 {
		v.headerHeight = h
	}
	return v
}

// AppConfig holds the main application configuration.
type AppConfig struct {
	host           string
	port           int
	dataDir        string
	dbURL          string
	logLevel       string
	logFormat      LogFormat
	reposFile      string
	corsOrigins    []string
	apiKeys        []string
	view           ViewConfig
	requestTimeout time.Duration
}

// DefaultDataDir returns the default data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".delve"
	}
	return filepath.Join(home, ".delve")
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	dataDir := DefaultDataDir()
	return AppConfig{
		host:           DefaultHost,
		port:           DefaultPort,
		dataDir:        dataDir,
		dbURL:          defaultDBURL(dataDir),
		logLevel:       DefaultLogLevel,
		logFormat:      LogFormatPretty,
		corsOrigins:    []string{},
		apiKeys:        []string{},
		view:           NewViewConfig(),
		requestTimeout: DefaultRequestTimeout,
	}
}

func defaultDBURL(dataDir string) string {
	return "sqlite:///" + filepath.Join(dataDir, DefaultDBFile)
}

// Host returns the server host to bind to.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port to listen on.
func (c AppConfig) Port() int { return c.port }

// Addr returns the combined host:port address.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// DataDir returns the data directory path.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// ReposFile returns the path of the repository seed file, empty when unset.
func (c AppConfig) ReposFile() string { return c.reposFile }

// CORSOrigins returns the allowed cross-origin request origins.
func (c AppConfig) CORSOrigins() []string {
	origins := make([]string, len(c.corsOrigins))
	copy(origins, c.corsOrigins)
	return origins
}

// APIKeys returns the configured API keys.
func (c AppConfig) APIKeys() []string {
	keys := make([]string, len(c.apiKeys))
	copy(keys, c.apiKeys)
	return keys
}

// View returns the file view layout config.
func (c AppConfig) View() ViewConfig { return c.view }

// RequestTimeout returns the timeout applied to /api/v1 requests.
func (c AppConfig) RequestTimeout() time.Duration { return c.requestTimeout }

// EnsureDataDir creates the data directory if it doesn't exist.
func (c AppConfig) EnsureDataDir() error {
	if err := os.MkdirAll(c.dataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	return nil
}

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithDataDir sets the data directory. A database URL still pointing at the
// previous default follows the new directory.
func WithDataDir(dir string) AppConfigOption {
	return func(c *AppConfig) {
		if c.dbURL == "" || c.dbURL == defaultDBURL(c.dataDir) {
			c.dbURL = defaultDBURL(dir)
		}
		c.dataDir = dir
	}
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithReposFile sets the repository seed file.
func WithReposFile(path string) AppConfigOption {
	return func(c *AppConfig) { c.reposFile = path }
}

// WithCORSOrigins sets the allowed CORS origins.
func WithCORSOrigins(origins []string) AppConfigOption {
	return func(c *AppConfig) {
		c.corsOrigins = make([]string, len(origins))
		copy(c.corsOrigins, origins)
	}
}

// WithAPIKeys sets the API keys.
func WithAPIKeys(keys []string) AppConfigOption {
	return func(c *AppConfig) {
		c.apiKeys = make([]string, len(keys))
		copy(c.apiKeys, keys)
	}
}

// WithViewConfig sets the file view layout.
func WithViewConfig(v ViewConfig) AppConfigOption {
	return func(c *AppConfig) { c.view = v }
}

// WithRequestTimeout sets the API request timeout.
func WithRequestTimeout(d time.Duration) AppConfigOption {
	return func(c *AppConfig) {
		if d > 0 {
			c.requestTimeout = d
		}
	}
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	return NewAppConfig().Apply(opts...)
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
// API keys are shown as a count.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("addr", c.Addr()),
		slog.String("data_dir", c.dataDir),
		slog.String("db_url", c.maskedDBURL()),
		slog.String("log_level", c.logLevel),
		slog.String("repos_file", c.reposFile),
		slog.Int("cors_origins", len(c.corsOrigins)),
		slog.Int("api_keys_count", len(c.apiKeys)),
		slog.Float64("line_height", c.view.LineHeight()),
		slog.Float64("header_height", c.view.HeaderHeight()),
	}
}

func (c AppConfig) maskedDBURL() string {
	if c.dbURL == "" {
		return "(default)"
	}
	if strings.HasPrefix(c.dbURL, "sqlite:") {
		return c.dbURL
	}
	return "postgres://***@***"
}

// ParseList parses a comma-separated list, dropping blank entries.
func ParseList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
