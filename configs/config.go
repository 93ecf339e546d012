// Copyright 2026 layolu and the godoujinshiinfo contributors
// SPDX-License-Identifier: Apache-2.0

/*
Package config holds the client configuration: API endpoint, token refresh
policy, response caching, request throttling, and logging.

Values are resolved in order: built-in defaults, then an optional YAML file,
then environment variables (a .env file is honored when present).
*/
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config is the client configuration.
type Config struct {
	Basic struct {
		// Endpoint is the base URL of the API, ending in a slash.
		Endpoint  string `yaml:"endpoint"`
		UserAgent string `yaml:"userAgent"`
	} `yaml:"basic"`

	Auth struct {
		// RefreshDeadline is how close to token expiry a proactive
		// refresh is triggered before a mutating call.
		RefreshDeadline time.Duration `yaml:"refreshDeadline"`
	} `yaml:"auth"`

	Cache struct {
		Enabled bool          `yaml:"enabled"`
		Size    int           `yaml:"cacheSize"`
		TTL     time.Duration `yaml:"cacheTTL"`
	} `yaml:"cache"`

	RateLimit struct {
		Enabled bool    `yaml:"enabled"`
		RPS     float64 `yaml:"rps"`
		Burst   int     `yaml:"burst"`
	} `yaml:"rateLimit"`

	Log struct {
		Level  string `yaml:"logLevel"`
		Format string `yaml:"logFormat"`
	} `yaml:"log"`
}

// New returns a Config populated with defaults.
func New() *Config {
	cfg := &Config{}
	cfg.SetDefaults()

	return cfg
}

// Load builds a Config from defaults, the YAML file at configFilePath
// (skipped when empty or missing), and environment variables.
func Load(configFilePath string) (*Config, error) {
	cfg := New()

	if err := cfg.readYAML(configFilePath); err != nil {
		return nil, err
	}

	if err := cfg.readEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.setupLogger()

	return cfg, nil
}

func (cfg *Config) readYAML(configFilePath string) error {
	if configFilePath == "" {
		return nil
	}

	_, err := os.Stat(configFilePath)
	if os.IsNotExist(err) {
		log.Info().
			Str("path", configFilePath).
			Msg("No YAML configuration file found, skipping")

		return nil
	}

	yamlCfg, err := os.ReadFile(configFilePath) // #nosec G304 -- Only loading a config file
	if err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", configFilePath, err)
	}

	if err := yaml.Unmarshal(yamlCfg, cfg); err != nil {
		return fmt.Errorf("failed to parse YAML from %s: %w", configFilePath, err)
	}

	log.Info().
		Str("path", configFilePath).
		Msg("Successfully loaded configuration")

	return nil
}

// readEnv applies environment variable overrides. A .env file in the
// working directory is loaded first when present.
func (cfg *Config) readEnv() error {
	// godotenv never overrides variables already set in the environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	if v := os.Getenv("DOUJINSHIINFO_ENDPOINT"); v != "" {
		cfg.Basic.Endpoint = v
	}

	if v := os.Getenv("DOUJINSHIINFO_USER_AGENT"); v != "" {
		cfg.Basic.UserAgent = v
	}

	if err := envDuration("DOUJINSHIINFO_REFRESH_DEADLINE", &cfg.Auth.RefreshDeadline); err != nil {
		return err
	}

	if err := envBool("DOUJINSHIINFO_CACHE", &cfg.Cache.Enabled); err != nil {
		return err
	}

	if err := envInt("DOUJINSHIINFO_CACHE_SIZE", &cfg.Cache.Size); err != nil {
		return err
	}

	if err := envDuration("DOUJINSHIINFO_CACHE_TTL", &cfg.Cache.TTL); err != nil {
		return err
	}

	if err := envBool("DOUJINSHIINFO_RATE_LIMIT", &cfg.RateLimit.Enabled); err != nil {
		return err
	}

	if err := envFloat("DOUJINSHIINFO_RATE_LIMIT_RPS", &cfg.RateLimit.RPS); err != nil {
		return err
	}

	if err := envInt("DOUJINSHIINFO_RATE_LIMIT_BURST", &cfg.RateLimit.Burst); err != nil {
		return err
	}

	if v := os.Getenv("DOUJINSHIINFO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	if v := os.Getenv("DOUJINSHIINFO_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}

	return nil
}
