// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// useDotEnv loads environment variables from a .env file, checking
// the current working directory, then the directory of the binary.
// Variables that are already set are left alone.
//
// This function soft fails if the .env file doesn't exist in either location.
func useDotEnv() error {
	if cwd, err := os.Getwd(); err != nil {
		log.Warn().
			Err(err).
			Msg("Could not get current working directory")
	} else if loaded, err := tryLoadDotEnv(filepath.Join(cwd, ".env")); err != nil || loaded {
		return err
	}

	dir := "."
	if exe, err := os.Executable(); err == nil {
		dir = filepath.Dir(exe)
	}

	_, err := tryLoadDotEnv(filepath.Join(dir, ".env"))

	return err
}

// tryLoadDotEnv loads the .env file at envPath. A missing file is not an
// error. Unreadable or malformed files are.
func tryLoadDotEnv(envPath string) (bool, error) {
	err := godotenv.Load(envPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().
			Str("path", envPath).
			Msg("No .env file found, skipping")

		return false, nil
	}

	if err != nil {
		return false, err
	}

	log.Info().
		Str("path", envPath).
		Msg("Loaded configuration from .env file")

	return true, nil
}
