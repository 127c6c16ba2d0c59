package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp 切換到空目錄，避免讀到專案內的 .env 或 config.yaml
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "file", cfg.Catalog.Source)
	assert.Equal(t, 5*time.Minute, cfg.Catalog.CacheTTL)
	assert.Equal(t, "memory", cfg.Preferences.Store)
	assert.Equal(t, 5, cfg.Search.HistoryLimit)
	assert.Equal(t, "bingung", cfg.Search.RandomTrigger)
	assert.Equal(t, time.Second, cfg.DedupWindow)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PREFERENCE_STORE", "redis")
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("APP_SEARCH_HISTORY_LIMIT", "8")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Preferences.Store)
	assert.Equal(t, "cache:6380", cfg.Preferences.RedisAddr)
	assert.Equal(t, 8, cfg.Search.HistoryLimit)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
}

func TestLoadConfig_FileAndDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	yaml := "catalog:\n  source: remote\n  url: http://catalog.local/campus.json\nsearch:\n  random_trigger: lapar\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("LOG_LEVEL") })

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "remote", cfg.Catalog.Source)
	assert.Equal(t, "http://catalog.local/campus.json", cfg.Catalog.URL)
	assert.Equal(t, "lapar", cfg.Search.RandomTrigger)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidateConfig(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:      ServerConfig{Port: 8080, MaxBodyBytes: 1024},
			Catalog:     CatalogConfig{Source: "file"},
			Preferences: PreferenceConfig{Store: "memory"},
			Search:      SearchConfig{HistoryLimit: 5},
			RateLimit:   RateLimitConfig{Enabled: true, Requests: 10, Window: time.Minute},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(*Config) {}, true},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, false},
		{"remote without url", func(c *Config) { c.Catalog.Source = "remote" }, false},
		{"remote with url", func(c *Config) {
			c.Catalog.Source = "remote"
			c.Catalog.URL = "http://x"
			c.Catalog.Timeout = time.Second
		}, true},
		{"unknown source", func(c *Config) { c.Catalog.Source = "s3" }, false},
		{"redis without addr", func(c *Config) { c.Preferences.Store = "redis" }, false},
		{"unknown store", func(c *Config) { c.Preferences.Store = "sqlite" }, false},
		{"zero history", func(c *Config) { c.Search.HistoryLimit = 0 }, false},
		{"rate limit disabled", func(c *Config) { c.RateLimit = RateLimitConfig{} }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := validateConfig(&cfg)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
