// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "flag"

// parseCommandLineArgs defines and parses flags, returning the value of the "config" flag.
func parseCommandLineArgs() string {
	var configFilePath string

	if f := flag.Lookup("config"); f != nil {
		configFilePath = f.Value.String()
	} else {
		flag.StringVar(&configFilePath, "config", defaultConfigFile, "Path to a msgc configuration file in YAML format.")
	}

	if !flag.Parsed() {
		flag.Parse()
	}

	return configFilePath
}
