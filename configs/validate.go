// Copyright 2026 layolu and the godoujinshiinfo contributors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	errEndpointInvalid     = errors.New("endpoint must be an absolute http(s) URL ending in /")
	errCacheSizeInvalid    = errors.New("cache size must be positive when caching is enabled")
	errRateLimitRPSInvalid = errors.New("rate limit rps must be positive when rate limiting is enabled")
)

// Validate checks the configuration for values that cannot work at runtime.
func (cfg *Config) Validate() error {
	parsed, err := url.Parse(cfg.Basic.Endpoint)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", errEndpointInvalid, cfg.Basic.Endpoint, err)
	}

	if !parsed.IsAbs() || (parsed.Scheme != "http" && parsed.Scheme != "https") ||
		!strings.HasSuffix(parsed.Path, "/") {
		return fmt.Errorf("%w: %q", errEndpointInvalid, cfg.Basic.Endpoint)
	}

	if cfg.Cache.Enabled && cfg.Cache.Size <= 0 {
		return errCacheSizeInvalid
	}

	if cfg.RateLimit.Enabled && cfg.RateLimit.RPS <= 0 {
		return errRateLimitRPSInvalid
	}

	return nil
}
