// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"codeberg.org/pixivfe/msgc/catalog"
	"codeberg.org/pixivfe/msgc/config"
	"codeberg.org/pixivfe/msgc/core/audit"
	"codeberg.org/pixivfe/msgc/core/cache"
	"codeberg.org/pixivfe/msgc/core/descriptor"
	"codeberg.org/pixivfe/msgc/core/idgen"
	"codeberg.org/pixivfe/msgc/extract"
)

const (
	descriptorsBaseName = "messages"
	templateFileName    = "messages.pot"

	dirPerm  = 0o755
	filePerm = 0o644
)

// runExtract writes the descriptor file, the gettext template and,
// when configured, a go-i18n message file.
func runExtract(ctx context.Context, cfg *config.Config) error {
	res, err := extractMessages(ctx, cfg)
	if err != nil {
		return err
	}

	outDir := cfg.Extract.OutDir
	opts := descriptor.Options{StripNonEssentialFields: cfg.Extract.StripNonEssentialFields}

	err = writeOutput(ctx, filepath.Join(outDir, descriptorsBaseName+cfg.Extract.Format.Ext()), len(res.Messages),
		func(w io.Writer) error {
			return res.WriteDescriptors(w, cfg.Extract.Format, opts)
		})
	if err != nil {
		return err
	}

	header := catalog.Header{
		Project: "msgc",
		Version: config.BuildVersion,
		Created: time.Now(),
	}

	err = writeOutput(ctx, filepath.Join(outDir, templateFileName), len(res.Messages), func(w io.Writer) error {
		return catalog.WritePOT(w, header, res.Messages)
	})
	if err != nil {
		return err
	}

	if cfg.Catalog.TOMLDir == "" {
		return nil
	}

	base, err := catalog.ParseLocale(cfg.Catalog.BaseLocale)
	if err != nil {
		return err
	}

	return writeOutput(ctx, filepath.Join(cfg.Catalog.TOMLDir, catalog.TOMLFileName(base)), len(res.Messages),
		func(w io.Writer) error {
			return catalog.WriteTOML(w, base, res.Messages)
		})
}

// runCompile writes one message table per locale. With no arguments every
// loaded locale is compiled, otherwise each argument is matched to the
// closest loaded one.
func runCompile(ctx context.Context, cfg *config.Config, locales []string) error {
	res, err := extractMessages(ctx, cfg)
	if err != nil {
		return err
	}

	catalogs, err := catalog.Load(os.DirFS("."), cfg.Catalog.PODir, cfg.Catalog.Domain, cfg.Catalog.BaseLocale,
		catalog.WithStrictMissingKeys(cfg.Catalog.StrictMissingKeys))
	if err != nil {
		return fmt.Errorf("failed to load catalogues: %w", err)
	}

	tags, err := selectLocales(catalogs, locales)
	if err != nil {
		return err
	}

	for _, tag := range tags {
		span := audit.Span{Stage: audit.StageCompile, Target: tag.String(), Messages: len(res.Messages)}
		ctx := span.Begin(ctx)

		table, err := catalogs.Compile(tag, res.Messages)

		span.End()
		span.Error = err
		span.Log()

		if err != nil {
			return err
		}

		path := filepath.Join(cfg.Extract.OutDir, tag.String()+".json")

		err = writeOutput(ctx, path, table.Len(), func(w io.Writer) error {
			out, err := yaml.MarshalWithOptions(table, yaml.JSON())
			if err != nil {
				return fmt.Errorf("failed to encode %s: %w", tag, err)
			}

			_, err = w.Write(out)

			return err
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// selectLocales resolves requested locale names against the loaded
// catalogues. Names without a catalogue of their own fall back to the closest
// match, which may be the base locale.
func selectLocales(catalogs *catalog.Catalogs, requested []string) ([]language.Tag, error) {
	if len(requested) == 0 {
		return catalogs.Languages(), nil
	}

	var tags []language.Tag

	for _, name := range requested {
		want, err := catalog.ParseLocale(name)
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", name, err)
		}

		tag := catalogs.Match(want.String())

		if want != catalogs.Base() && !catalogs.Has(want) {
			log.Warn().
				Str("requested", name).
				Str("locale", tag.String()).
				Msg("No catalogue for locale, using closest match")
		}

		if !slices.Contains(tags, tag) {
			tags = append(tags, tag)
		}
	}

	return tags, nil
}

// runID prints the generated identifier of a message.
func runID(w io.Writer, args []string) error {
	var message, msgContext string

	switch len(args) {
	case 2:
		msgContext = args[1]

		fallthrough
	case 1:
		message = args[0]
	default:
		return fmt.Errorf("%w: usage: msgc id <message> [context]", errUsage)
	}

	_, err := fmt.Fprintln(w, idgen.MessageID(message, msgContext))

	return err
}

func extractMessages(ctx context.Context, cfg *config.Config) (*extract.Result, error) {
	span := audit.Span{Stage: audit.StageExtract}
	ctx = span.Begin(ctx)

	opts := extract.Options{
		FS:         os.DirFS("."),
		Inputs:     cfg.Extract.Inputs,
		Workers:    cfg.Extract.Workers,
		Whitespace: cfg.Extract.Whitespace,
	}

	if cfg.Cache.Enabled {
		c, err := cache.New(cfg.Cache.Size, cfg.Cache.Compress)
		if err != nil {
			return nil, fmt.Errorf("failed to create cache: %w", err)
		}

		opts.Cache = c
	}

	res, err := extract.Run(ctx, opts)

	span.End()
	span.Error = err

	if res != nil {
		span.Messages = len(res.Messages)
	}

	span.Log()

	return res, err
}

// writeOutput renders a file in memory and then writes it to path,
// creating parent directories as needed.
func writeOutput(ctx context.Context, path string, messages int, render func(io.Writer) error) error {
	span := audit.Span{Stage: audit.StageWrite, Target: path, Messages: messages}
	_ = span.Begin(ctx)

	defer func() {
		span.End()
		span.Log()
	}()

	var buf bytes.Buffer
	if span.Error = render(&buf); span.Error != nil {
		return span.Error
	}

	span.Bytes = buf.Len()

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		span.Error = err

		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), filePerm); err != nil {
		span.Error = err

		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	log.Info().
		Str("path", path).
		Int("messages", messages).
		Msg("Wrote output")

	return nil
}
