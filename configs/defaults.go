// Copyright 2026 layolu and the godoujinshiinfo contributors
// SPDX-License-Identifier: Apache-2.0

package config

import "time"

const (
	// DefaultEndpoint is the production API base URL.
	DefaultEndpoint = "https://api.doujinshi.info/v1/"

	// Default token refresh deadline in seconds.
	defaultRefreshDeadlineSeconds = 30
	// Default response cache TTL in minutes.
	defaultCacheTTLMinutes = 60
)

// SetDefaults populates the configuration with default values.
func (cfg *Config) SetDefaults() {
	cfg.Basic.Endpoint = DefaultEndpoint
	cfg.Basic.UserAgent = "godoujinshiinfo/0.1"

	cfg.Auth.RefreshDeadline = defaultRefreshDeadlineSeconds * time.Second

	cfg.Cache.Enabled = true
	cfg.Cache.Size = 100
	cfg.Cache.TTL = defaultCacheTTLMinutes * time.Minute

	cfg.RateLimit.Enabled = false
	cfg.RateLimit.RPS = 2
	cfg.RateLimit.Burst = 4

	cfg.Log.Level = "info"
	cfg.Log.Format = "console"
}
