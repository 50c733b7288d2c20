// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
msgc compiles message token streams into ICU MessageFormat descriptors and
translation catalogues.

Usage:

	msgc [-config file] extract
	msgc [-config file] compile [locale...]
	msgc [-config file] id <message> [context]
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"codeberg.org/pixivfe/msgc/config"
	"codeberg.org/pixivfe/msgc/core/audit"
)

var (
	errNoCommand      = errors.New("no command given")
	errUnknownCommand = errors.New("unknown command")
	errUsage          = errors.New("wrong number of arguments")
)

// main is the entry point of the application.
func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("msgc failed")
	}
}

// run loads the configuration and dispatches to the requested command.
func run() error {
	audit.SetDefaultLogger()

	if err := config.Global.LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return dispatch(ctx, &config.Global, flag.Args())
}

func dispatch(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return errNoCommand
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "extract":
		if len(rest) != 0 {
			return fmt.Errorf("%w: usage: msgc extract", errUsage)
		}

		return runExtract(ctx, cfg)
	case "compile":
		return runCompile(ctx, cfg, rest)
	case "id":
		return runID(os.Stdout, rest)
	default:
		return fmt.Errorf("%w: %q", errUnknownCommand, cmd)
	}
}
