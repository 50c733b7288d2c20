// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package config holds the msgc configuration.

Values are resolved in this order, later sources overriding earlier ones:

 1. built-in defaults, see [Config.SetDefaults]
 2. a YAML file given by -config, MSGC_CONFIGFILE, or ./msgc.yaml (./msgc.yml)
 3. a .env file in the working directory or next to the binary
 4. MSGC_* environment variables
*/
package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"

	"codeberg.org/pixivfe/msgc/core/whitespace"
	"codeberg.org/pixivfe/msgc/extract"
)

// Global exposes the application configuration.
var Global Config

const (
	defaultConfigFile  = "./msgc.yaml"
	fallbackConfigFile = "./msgc.yml"
)

// Config holds the application configuration.
type Config struct {
	Build buildInfo `yaml:"-"`

	Extract struct {
		Inputs     []string        `env:"MSGC_INPUTS" yaml:"inputs"`
		OutDir     string          `env:"MSGC_OUT_DIR" yaml:"outDir"`
		RawFormat  string          `env:"MSGC_FORMAT" yaml:"format"`
		Format     extract.Format  `yaml:"-"`
		RawMode    string          `env:"MSGC_WHITESPACE" yaml:"whitespace"`
		Whitespace whitespace.Mode `yaml:"-"`
		Workers    int             `env:"MSGC_WORKERS" yaml:"workers"`
		// Drop message, context and comment from written descriptors.
		StripNonEssentialFields bool `env:"MSGC_STRIP_NON_ESSENTIAL_FIELDS" yaml:"stripNonEssentialFields"`
	} `yaml:"extract"`

	Cache struct {
		Enabled  bool `env:"MSGC_CACHE" yaml:"enabled"`
		Size     int  `env:"MSGC_CACHE_SIZE" yaml:"cacheSize"`
		Compress bool `env:"MSGC_CACHE_COMPRESS" yaml:"compress"`
	} `yaml:"cache"`

	Catalog struct {
		PODir      string `env:"MSGC_PO_DIR" yaml:"poDir"`
		Domain     string `env:"MSGC_PO_DOMAIN" yaml:"domain"`
		BaseLocale string `env:"MSGC_BASE_LOCALE" yaml:"baseLocale"`
		// Strict mode for missing keys.
		//
		// When enabled, missing translations are logged (deduplicated per locale+key) and
		// visibly wrapped using markers.
		StrictMissingKeys bool `env:"MSGC_STRICT_MISSING_KEYS" yaml:"strictMissingKeys"`
		// Directory for go-i18n message files. Empty disables them.
		TOMLDir string `env:"MSGC_TOML_DIR" yaml:"tomlDir"`
	} `yaml:"catalog"`

	Log struct {
		Level   string   `env:"MSGC_LOG_LEVEL" yaml:"logLevel"`
		Outputs []string `env:"MSGC_LOG_OUTPUTS" yaml:"logOutputs"`
		Format  string   `env:"MSGC_LOG_FORMAT" yaml:"logFormat"`
	} `yaml:"log"`
}

// LoadConfig loads the configuration from various sources.
func (cfg *Config) LoadConfig() error {
	parsedConfigFlagValue := parseCommandLineArgs()

	// Check if the -config flag was explicitly set by the user.
	configFlagUserSet := false

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			configFlagUserSet = true
		}
	})

	var configFilePath string

	// Determine the config file path with the correct precedence:
	// 1. Command-line flag (-config)
	// 2. Environment variable (MSGC_CONFIGFILE)
	// 3. Default path with fallback check
	switch envVar := os.Getenv("MSGC_CONFIGFILE"); {
	case configFlagUserSet:
		configFilePath = parsedConfigFlagValue
	case envVar != "":
		configFilePath = envVar
	default:
		configFilePath = parsedConfigFlagValue
		if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
			if _, statErr := os.Stat(fallbackConfigFile); statErr == nil {
				configFilePath = fallbackConfigFile
			}
		}
	}

	if err := cfg.load(configFilePath); err != nil {
		return err
	}

	cfg.setupAudit()
	cfg.print()

	return nil
}

// load resolves every source but the command line, then validates.
func (cfg *Config) load(configFilePath string) error {
	cfg.SetDefaults()

	cfg.Build.load()

	if err := cfg.readYAML(configFilePath); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := useDotEnv(); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validateAndSet(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	return nil
}
