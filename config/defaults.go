// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "codeberg.org/pixivfe/msgc/catalog"

const defaultCacheSize = 4096

// SetDefaults populates the configuration with default values.
func (cfg *Config) SetDefaults() {
	cfg.Extract.Inputs = []string{"tokens/*.json"}
	cfg.Extract.OutDir = "locales"
	cfg.Extract.RawFormat = "json"
	cfg.Extract.RawMode = "none"
	cfg.Extract.Workers = 0
	cfg.Extract.StripNonEssentialFields = false

	cfg.Cache.Enabled = true
	cfg.Cache.Size = defaultCacheSize
	cfg.Cache.Compress = false

	cfg.Catalog.PODir = "po"
	cfg.Catalog.Domain = "messages"
	cfg.Catalog.BaseLocale = catalog.BaseLocale
	cfg.Catalog.StrictMissingKeys = false
	cfg.Catalog.TOMLDir = ""

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"
}
