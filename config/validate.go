// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"strings"

	"codeberg.org/pixivfe/msgc/catalog"
	"codeberg.org/pixivfe/msgc/core/whitespace"
	"codeberg.org/pixivfe/msgc/extract"
)

// validation errors.
var (
	errNoInputs          = errors.New("extract.inputs must name at least one pattern")
	errEmptyOutDir       = errors.New("extract.outDir cannot be empty")
	errNegativeWorkers   = errors.New("extract.workers cannot be negative")
	errInvalidCacheSize  = errors.New("cache.cacheSize must be positive when the cache is enabled")
	errEmptyDomain       = errors.New("catalog.domain cannot be empty")
	errInvalidBaseLocale = errors.New("invalid catalog.baseLocale")
	errInvalidLogLevel   = errors.New("invalid log.logLevel")
	errInvalidLogFormat  = errors.New("invalid log.logFormat")
)

// validateAndSet validates the configuration and populates the parsed fields.
func (cfg *Config) validateAndSet() error {
	if len(cfg.Extract.Inputs) == 0 {
		return errNoInputs
	}

	if strings.TrimSpace(cfg.Extract.OutDir) == "" {
		return errEmptyOutDir
	}

	format, err := extract.ParseFormat(cfg.Extract.RawFormat)
	if err != nil {
		return err
	}

	cfg.Extract.Format = format

	mode, err := whitespace.ParseMode(cfg.Extract.RawMode)
	if err != nil {
		return err
	}

	cfg.Extract.Whitespace = mode

	if cfg.Extract.Workers < 0 {
		return errNegativeWorkers
	}

	if cfg.Cache.Enabled && cfg.Cache.Size <= 0 {
		return errInvalidCacheSize
	}

	if cfg.Catalog.Domain == "" {
		return errEmptyDomain
	}

	if _, err := catalog.ParseLocale(cfg.Catalog.BaseLocale); err != nil {
		return fmt.Errorf("%w %q: %w", errInvalidBaseLocale, cfg.Catalog.BaseLocale, err)
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.Log.Level)
	}

	switch cfg.Log.Format {
	case "console", "json":
		// valid
	default:
		return fmt.Errorf("%w: %q", errInvalidLogFormat, cfg.Log.Format)
	}

	return nil
}
