// Copyright 2026 layolu and the godoujinshiinfo contributors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// setupLogger configures the global zerolog logger from the Log section.
//
// The "console" format uses a human-readable writer, colored only when
// stderr is a terminal. Any other value keeps zerolog's JSON output.
func (cfg *Config) setupLogger() {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel

		log.Warn().
			Str("level", cfg.Log.Level).
			Msg("Unknown log level, falling back to info")
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Log.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:     os.Stderr,
			NoColor: !isatty.IsTerminal(os.Stderr.Fd()),
		})
	}
}
