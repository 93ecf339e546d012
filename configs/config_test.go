// Copyright 2026 layolu and the godoujinshiinfo contributors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHasDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, DefaultEndpoint, cfg.Basic.Endpoint)
	assert.Equal(t, 30*time.Second, cfg.Auth.RefreshDeadline)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 100, cfg.Cache.Size)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)

	require.NoError(t, cfg.Validate())
}

func TestReadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
basic:
  endpoint: https://staging.doujinshi.info/v1/
auth:
  refreshDeadline: 45s
cache:
  enabled: false
log:
  logLevel: debug
`), 0o600))

	cfg := New()
	require.NoError(t, cfg.readYAML(path))

	assert.Equal(t, "https://staging.doujinshi.info/v1/", cfg.Basic.Endpoint)
	assert.Equal(t, 45*time.Second, cfg.Auth.RefreshDeadline)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Untouched sections keep their defaults.
	assert.Equal(t, 100, cfg.Cache.Size)
}

func TestReadYAMLMissingFileIsSkipped(t *testing.T) {
	cfg := New()
	require.NoError(t, cfg.readYAML(filepath.Join(t.TempDir(), "absent.yaml")))
	assert.Equal(t, DefaultEndpoint, cfg.Basic.Endpoint)
}

func TestReadEnvOverrides(t *testing.T) {
	t.Setenv("DOUJINSHIINFO_ENDPOINT", "http://localhost:8080/v1/")
	t.Setenv("DOUJINSHIINFO_REFRESH_DEADLINE", "60")
	t.Setenv("DOUJINSHIINFO_CACHE", "false")
	t.Setenv("DOUJINSHIINFO_RATE_LIMIT", "true")
	t.Setenv("DOUJINSHIINFO_RATE_LIMIT_RPS", "0.5")
	t.Setenv("DOUJINSHIINFO_LOG_LEVEL", "warn")

	cfg := New()
	require.NoError(t, cfg.readEnv())

	assert.Equal(t, "http://localhost:8080/v1/", cfg.Basic.Endpoint)
	// Bare integers are seconds, matching the original configuration surface.
	assert.Equal(t, time.Minute, cfg.Auth.RefreshDeadline)
	assert.False(t, cfg.Cache.Enabled)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.InDelta(t, 0.5, cfg.RateLimit.RPS, 0.0001)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestReadEnvDurationString(t *testing.T) {
	t.Setenv("DOUJINSHIINFO_CACHE_TTL", "90m")

	cfg := New()
	require.NoError(t, cfg.readEnv())
	assert.Equal(t, 90*time.Minute, cfg.Cache.TTL)
}

func TestReadEnvRejectsGarbage(t *testing.T) {
	t.Setenv("DOUJINSHIINFO_CACHE_SIZE", "lots")

	cfg := New()
	require.Error(t, cfg.readEnv())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"relative endpoint", func(c *Config) { c.Basic.Endpoint = "api/v1/" }, true},
		{"endpoint without trailing slash", func(c *Config) { c.Basic.Endpoint = "https://api.doujinshi.info/v1" }, true},
		{"non-http scheme", func(c *Config) { c.Basic.Endpoint = "ftp://api.doujinshi.info/v1/" }, true},
		{"zero cache size with cache on", func(c *Config) { c.Cache.Size = 0 }, true},
		{"zero cache size with cache off", func(c *Config) { c.Cache.Enabled = false; c.Cache.Size = 0 }, false},
		{"zero rps with limiter on", func(c *Config) { c.RateLimit.Enabled = true; c.RateLimit.RPS = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
