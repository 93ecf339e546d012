// Copyright 2026 layolu and the godoujinshiinfo contributors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

func envBool(name string, dst *bool) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}

	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid boolean in %s: %w", name, err)
	}

	*dst = parsed

	return nil
}

func envInt(name string, dst *int) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}

	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid integer in %s: %w", name, err)
	}

	*dst = parsed

	return nil
}

func envFloat(name string, dst *float64) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}

	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid number in %s: %w", name, err)
	}

	*dst = parsed

	return nil
}

// envDuration accepts Go duration strings ("45s") and, for compatibility
// with the original configuration surface, bare integers meaning seconds.
func envDuration(name string, dst *time.Duration) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}

	if seconds, err := strconv.Atoi(v); err == nil {
		*dst = time.Duration(seconds) * time.Second

		return nil
	}

	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid duration in %s: %w", name, err)
	}

	*dst = parsed

	return nil
}
