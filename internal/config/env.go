// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Struct fields are mapped via their `env` tags, each prefixed with
// [EnvPrefix].
//
// Returns a wrapped error if env.Parse fails (e.g. a value cannot be
// converted to the target type).
func parseEnv(cfg any) error {
	err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix})
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}

// loadDotEnv seeds the process environment from a .env file. The file named
// by SUMSUB_DOTENV must exist; otherwise ./.env is loaded when present.
// Variables that are already set are left untouched.
func loadDotEnv() error {
	if path := os.Getenv(EnvPrefix + "DOTENV"); path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("error loading dotenv file %q: %w", path, err)
		}
		return nil
	}

	if _, err := os.Stat(".env"); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error checking dotenv file: %w", err)
	}

	if err := godotenv.Load(".env"); err != nil {
		return fmt.Errorf("error loading dotenv file: %w", err)
	}
	return nil
}
