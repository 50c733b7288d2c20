// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestHumanizeSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{1023, "1023"},
		{1024, "1.00K"},
		{1536, "1.50K"},
		{bytesInMB, "1.00M"},
		{3 * bytesInGB, "3.00G"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, humanizeSize(tt.in))
	}
}

func TestSpanEndOnce(t *testing.T) {
	t.Parallel()

	span := Span{Stage: StageWrite}
	_ = span.Begin(context.Background())
	span.End()

	first := span.Duration()
	span.End()

	assert.Equal(t, first, span.Duration())
}

//nolint:paralleltest // replaces the global logger
func TestSpanLog(t *testing.T) {
	var buf bytes.Buffer

	saved := log.Logger
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)

	t.Cleanup(func() { log.Logger = saved })

	Span{Stage: StageCompile, Target: "ja", Messages: 3, Bytes: 2048}.Log()
	assert.Contains(t, buf.String(), `"stage":"compile"`)
	assert.Contains(t, buf.String(), `"target":"ja"`)
	assert.Contains(t, buf.String(), `"len":"2.00K"`)
	assert.Contains(t, buf.String(), `"level":"debug"`)

	buf.Reset()
	Span{Stage: StageExtract, Error: errors.New("boom")}.Log()
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), `"error":"boom"`)
	assert.NotContains(t, buf.String(), `"target"`)
}
