package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
type EnvConfig struct {
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// Env: DATA_DIR (default: ~/.delve)
	DataDir string `envconfig:"DATA_DIR"`

	// Env: DB_URL (default: sqlite:///{data_dir}/delve.db)
	DBURL string `envconfig:"DB_URL"`

	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is pretty or json.
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// ReposFile is a YAML or JSON file of repositories registered at startup.
	// Env: REPOS_FILE
	ReposFile string `envconfig:"REPOS_FILE"`

	// CORSOrigins is a comma-separated list of allowed origins.
	// Env: CORS_ORIGINS
	CORSOrigins string `envconfig:"CORS_ORIGINS"`

	// APIKeys is a comma-separated list of keys accepted for repository writes.
	// Env: API_KEYS
	APIKeys string `envconfig:"API_KEYS"`

	// RequestTimeoutSeconds bounds /api/v1 requests.
	// Env: REQUEST_TIMEOUT_SECONDS (default: 60)
	RequestTimeoutSeconds float64 `envconfig:"REQUEST_TIMEOUT_SECONDS" default:"60"`

	// View configures the line layout.
	View ViewEnv `envconfig:"VIEW"`
}

// ViewEnv holds environment configuration for the file view layout.
type ViewEnv struct {
	// Env: VIEW_LINE_HEIGHT (default: 20)
	LineHeight float64 `envconfig:"LINE_HEIGHT" default:"20"`

	// Env: VIEW_HEADER_HEIGHT (default: 0)
	HeaderHeight float64 `envconfig:"HEADER_HEIGHT" default:"0"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	return LoadFromEnvWithPrefix("")
}

// LoadFromEnvWithPrefix loads configuration with a custom prefix.
// For example, prefix "DELVE" would require DELVE_DATA_DIR instead of DATA_DIR.
func LoadFromEnvWithPrefix(prefix string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	var opts []AppConfigOption

	if e.Host != "" {
		opts = append(opts, WithHost(e.Host))
	}
	if e.Port != 0 {
		opts = append(opts, WithPort(e.Port))
	}
	if e.DataDir != "" {
		opts = append(opts, WithDataDir(e.DataDir))
	}
	if e.DBURL != "" {
		opts = append(opts, WithDBURL(e.DBURL))
	}
	if e.LogLevel != "" {
		opts = append(opts, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		opts = append(opts, WithLogFormat(parseLogFormat(e.LogFormat)))
	}
	if e.ReposFile != "" {
		opts = append(opts, WithReposFile(e.ReposFile))
	}
	if e.CORSOrigins != "" {
		opts = append(opts, WithCORSOrigins(ParseList(e.CORSOrigins)))
	}
	if e.APIKeys != "" {
		opts = append(opts, WithAPIKeys(ParseList(e.APIKeys)))
	}
	opts = append(opts,
		WithRequestTimeout(time.Duration(e.RequestTimeoutSeconds*float64(time.Second))),
		WithViewConfig(NewViewConfig().
			WithLineHeight(e.View.LineHeight).
			WithHeaderHeight(e.View.HeaderHeight)),
	)

	return NewAppConfigWithOptions(opts...)
}

func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
