// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package extract

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"codeberg.org/pixivfe/msgc/core/cache"
	"codeberg.org/pixivfe/msgc/core/descriptor"
	"codeberg.org/pixivfe/msgc/core/tokenstream"
	"codeberg.org/pixivfe/msgc/core/whitespace"
)

// logger returns the global logger tagged with this subsystem.
func logger() *zerolog.Logger {
	l := log.With().Str("sys", "extract").Logger()

	return &l
}

// ErrNoInputs is returned when no file matches the input patterns.
var ErrNoInputs = errors.New("no input files matched")

// Options configures [Run].
type Options struct {
	// FS is the file system inputs are read from. Defaults to the working directory.
	FS fs.FS

	// Inputs are glob patterns, see [fs.Glob].
	Inputs []string

	// Workers bounds concurrency. Zero or less means GOMAXPROCS.
	Workers int

	// Whitespace applies to messages that do not choose a mode themselves.
	Whitespace whitespace.Mode

	// Cache, when set, is consulted before compiling a message.
	Cache *cache.Cache
}

// job is one message awaiting compilation.
type job struct {
	file string
	msg  tokenstream.Message
}

// Run extracts and merges every message found in the inputs.
func Run(ctx context.Context, opts Options) (*Result, error) {
	fsys := opts.FS
	if fsys == nil {
		fsys = os.DirFS(".")
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	files, err := expandInputs(fsys, opts.Inputs)
	if err != nil {
		return nil, err
	}

	perFile, err := decodeFiles(ctx, fsys, files, workers)
	if err != nil {
		return nil, err
	}

	var jobs []job

	for i, msgs := range perFile {
		for _, msg := range msgs {
			if msg.Whitespace == "" {
				msg.Whitespace = opts.Whitespace
			}

			jobs = append(jobs, job{file: files[i], msg: msg})
		}
	}

	compiled := make([]descriptor.Descriptor, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			compiled[i] = compile(opts.Cache, j.msg)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := merge(jobs, compiled)
	res.Files = len(files)

	if opts.Cache != nil {
		res.Cache = opts.Cache.Stats()
	}

	logger().Info().
		Int("files", res.Files).
		Int("messages", len(jobs)).
		Int("unique", len(res.Messages)).
		Uint64("cache_hits", res.Cache.Hits).
		Msg("Extracted messages")

	return res, nil
}

// expandInputs resolves patterns to a sorted, duplicate-free file list.
func expandInputs(fsys fs.FS, patterns []string) ([]string, error) {
	var files []string

	for _, pattern := range patterns {
		matches, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid input pattern %q: %w", pattern, err)
		}

		if len(matches) == 0 {
			logger().Warn().Str("pattern", pattern).Msg("Input pattern matched no files")
		}

		files = append(files, matches...)
	}

	slices.Sort(files)
	files = slices.Compact(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoInputs, strings.Join(patterns, ", "))
	}

	return files, nil
}

func decodeFiles(ctx context.Context, fsys fs.FS, files []string, workers int) ([][]tokenstream.Message, error) {
	out := make([][]tokenstream.Message, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, name := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := fs.ReadFile(fsys, name)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", name, err)
			}

			msgs, err := tokenstream.Decode(data)
			if err != nil {
				return fmt.Errorf("failed to decode %s: %w", name, err)
			}

			logger().Debug().Str("file", name).Int("messages", len(msgs)).Msg("Decoded token stream")

			out[i] = msgs

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// compile returns the descriptor for msg, going through c when it is set.
// Cache entries hold the descriptor encoded as JSON.
func compile(c *cache.Cache, msg tokenstream.Message) descriptor.Descriptor {
	if c == nil {
		return msg.Compile(descriptor.Options{})
	}

	key := cacheKey(msg)

	if data, ok := c.Get(key); ok {
		var d descriptor.Descriptor
		if err := yaml.UnmarshalWithOptions(data, &d, yaml.UseOrderedMap()); err == nil {
			return d
		}

		logger().Debug().Str("key", key).Msg("Discarding undecodable cache entry")
	}

	d := msg.Compile(descriptor.Options{})

	data, err := yaml.MarshalWithOptions(d, yaml.JSON())
	if err != nil {
		logger().Debug().Err(err).Str("id", d.ID).Msg("Descriptor not cached")

		return d
	}

	c.Add(key, data)

	return d
}

// cacheKey covers everything that affects compilation, and not the origin.
func cacheKey(msg tokenstream.Message) string {
	return cache.Key(strings.Join([]string{
		msg.Source.ID,
		msg.Source.Context,
		msg.Source.Comment,
		string(msg.Whitespace),
		msg.RawTokens,
	}, "\x1f"))
}
