// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"context"
	"fmt"
	"runtime/trace"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Span represents one stage of a msgc command in flight.
type Span struct {
	// only these fields are set automatically
	task     *trace.Task
	start    time.Time
	duration time.Duration

	Stage    Stage
	Target   string // Target is the file or locale the stage works on
	Messages int
	Bytes    int
	Error    error
}

// Stage names a step of the msgc pipeline.
type Stage string

// Constants for pipeline stages.
const (
	StageExtract Stage = "extract"
	StageWrite   Stage = "write"
	StageCompile Stage = "compile"
)

// Begin starts the span and an execution trace task for it.
func (span *Span) Begin(ctx context.Context) context.Context {
	span.start = time.Now()

	ctx, span.task = trace.NewTask(ctx, "msgc."+string(span.Stage))

	return ctx
}

// End stops the span. Only the first call has an effect.
func (span *Span) End() {
	if span.task != nil {
		span.duration = time.Since(span.start)
		span.task.End()

		span.task = nil
	}
}

// Duration returns how long the span ran, or zero if it has not ended.
func (span *Span) Duration() time.Duration {
	return span.duration
}

func (span Span) Log() {
	event := log.Debug()
	if span.Error != nil {
		event = log.Error().Err(span.Error)
	}

	event.Str("sys", "audit")
	event.Str("stage", string(span.Stage))

	if span.Target != "" {
		event.Str("target", span.Target)
	}

	event.Int("messages", span.Messages)
	event.Str("len", humanizeSize(span.Bytes))
	event.Dur("dur", span.duration)

	event.Send()
}

const (
	bytesInKB = 1024
	bytesInMB = bytesInKB * bytesInKB
	bytesInGB = bytesInMB * bytesInKB
)

func humanizeSize(x int) string {
	if x < bytesInKB {
		return strconv.Itoa(x)
	}

	if x < bytesInMB {
		return fmt.Sprintf("%.2fK", float64(x)/bytesInKB)
	}

	if x < bytesInGB {
		return fmt.Sprintf("%.2fM", float64(x)/bytesInMB)
	}

	return fmt.Sprintf("%.2fG", float64(x)/bytesInGB)
}
