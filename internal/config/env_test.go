package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"HOST", "PORT", "DATA_DIR", "DB_URL", "LOG_LEVEL", "LOG_FORMAT",
	"REPOS_FILE", "CORS_ORIGINS", "API_KEYS", "REQUEST_TIMEOUT_SECONDS",
	"VIEW_LINE_HEIGHT", "VIEW_HEADER_HEIGHT",
}

// clearEnvVars unsets every key for the duration of the test.
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, "pretty", cfg.LogFormat)
	assert.Equal(t, DefaultLineHeight, cfg.View.LineHeight)
	assert.Equal(t, DefaultHeaderHeight, cfg.View.HeaderHeight)
	assert.Equal(t, DefaultRequestTimeout.Seconds(), cfg.RequestTimeoutSeconds)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("REPOS_FILE", "/etc/delve/repos.yaml")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("API_KEYS", "k1,k2")
	t.Setenv("VIEW_LINE_HEIGHT", "18")
	t.Setenv("VIEW_HEADER_HEIGHT", "64")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "5")

	env, err := LoadFromEnv()
	require.NoError(t, err)
	cfg := env.ToAppConfig()

	assert.Equal(t, 9090, cfg.Port())
	assert.Equal(t, LogFormatJSON, cfg.LogFormat())
	assert.Equal(t, "/etc/delve/repos.yaml", cfg.ReposFile())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins())
	assert.Equal(t, []string{"k1", "k2"}, cfg.APIKeys())
	assert.Equal(t, 18.0, cfg.View().LineHeight())
	assert.Equal(t, 64.0, cfg.View().HeaderHeight())
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout())
}

func TestLoadFromEnvWithPrefix(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("DELVE_PORT", "7000")

	cfg, err := LoadFromEnvWithPrefix("DELVE")
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
}

func TestLoadFromEnv_InvalidPort(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("PORT", "not-a-number")

	_, err := LoadFromEnv()
	assert.Error(t, err)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	clearEnvVars(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("DATA_DIR="+dir+"\nLOG_LEVEL=DEBUG\n"), 0o644))
	t.Cleanup(func() {
		_ = os.Unsetenv("DATA_DIR")
		_ = os.Unsetenv("LOG_LEVEL")
	})

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataDir())
	assert.Equal(t, "DEBUG", cfg.LogLevel())
	assert.Equal(t, "sqlite:///"+filepath.Join(dir, "delve.db"), cfg.DBURL())
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
