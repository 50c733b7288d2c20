// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/pixivfe/msgc/config"
	"codeberg.org/pixivfe/msgc/core/idgen"
	"codeberg.org/pixivfe/msgc/core/whitespace"
	"codeberg.org/pixivfe/msgc/extract"
)

const tokenStream = `[
	{"origin": "src/app.jsx:4", "tokens": [{"text": "Hello "}, {"expr": {"type": "Identifier", "name": "name", "payload": "name"}}]},
	{"id": "greet", "origin": "src/app.jsx:9", "comment": "Landing page title", "tokens": [{"text": "Greeting"}]},
	{"context": "menu", "origin": "src/menu.jsx:2", "tokens": [{"text": "Open"}]}
]`

const jaPO = `msgid ""
msgstr ""
"Language: ja\n"

msgid "Hello {name}"
msgstr "こんにちは {name}"

msgctxt "menu"
msgid "Open"
msgstr "開く"
`

// setupWorkspace creates a project in a temporary directory and makes it the
// working directory.
func setupWorkspace(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.MkdirAll("tokens", 0o755))
	require.NoError(t, os.MkdirAll("po", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("tokens", "app.json"), []byte(tokenStream), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join("po", "ja.po"), []byte(jaPO), 0o600))

	cfg := &config.Config{}
	cfg.SetDefaults()
	cfg.Extract.Format = extract.FormatJSON
	cfg.Extract.Whitespace = whitespace.None

	return cfg
}

func readOutput(t *testing.T, path string) map[string]any {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, yaml.Unmarshal(data, &out))

	return out
}

//nolint:paralleltest // changes the working directory
func TestRunExtract(t *testing.T) {
	cfg := setupWorkspace(t)
	cfg.Catalog.TOMLDir = "i18n"

	require.NoError(t, runExtract(t.Context(), cfg))

	descriptors := readOutput(t, filepath.Join("locales", "messages.json"))
	assert.Len(t, descriptors, 3)
	assert.Contains(t, descriptors, "greet")
	assert.Contains(t, descriptors, idgen.MessageID("Hello {name}", ""))
	assert.Contains(t, descriptors, idgen.MessageID("Open", "menu"))

	pot, err := os.ReadFile(filepath.Join("locales", "messages.pot"))
	require.NoError(t, err)
	assert.Contains(t, string(pot), "#. Landing page title\n#. js-lingui-explicit-id\n#: src/app.jsx:9\nmsgid \"greet\"")
	assert.Contains(t, string(pot), "msgctxt \"menu\"\nmsgid \"Open\"")
	assert.Contains(t, string(pot), `"Project-Id-Version: msgc `+config.BuildVersion+`\n"`)

	toml, err := os.ReadFile(filepath.Join("i18n", "active.en.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(toml), "[greet]")
}

//nolint:paralleltest // changes the working directory
func TestRunExtractYAML(t *testing.T) {
	cfg := setupWorkspace(t)
	cfg.Extract.Format = extract.FormatYAML
	cfg.Cache.Enabled = false

	require.NoError(t, runExtract(t.Context(), cfg))

	descriptors := readOutput(t, filepath.Join("locales", "messages.yaml"))
	assert.Len(t, descriptors, 3)

	_, err := os.Stat(filepath.Join("i18n", "active.en.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

//nolint:paralleltest // changes the working directory
func TestRunExtractNoInputs(t *testing.T) {
	cfg := setupWorkspace(t)
	cfg.Extract.Inputs = []string{"missing/*.json"}

	require.ErrorIs(t, runExtract(t.Context(), cfg), extract.ErrNoInputs)
}

//nolint:paralleltest // changes the working directory
func TestRunCompile(t *testing.T) {
	cfg := setupWorkspace(t)
	cfg.Catalog.StrictMissingKeys = true

	require.NoError(t, runCompile(t.Context(), cfg, nil))

	helloID := idgen.MessageID("Hello {name}", "")
	openID := idgen.MessageID("Open", "menu")

	en := readOutput(t, filepath.Join("locales", "en.json"))
	assert.Equal(t, map[string]any{
		"greet": "Greeting",
		helloID: "Hello {name}",
		openID:  "Open",
	}, en)

	ja := readOutput(t, filepath.Join("locales", "ja.json"))
	assert.Equal(t, map[string]any{
		"greet": "⟦Greeting⟧",
		helloID: "こんにちは {name}",
		openID:  "開く",
	}, ja)
}

//nolint:paralleltest // changes the working directory
func TestRunCompileSelectedLocales(t *testing.T) {
	tests := []struct {
		name    string
		locales []string
		want    []string
		absent  []string
	}{
		{name: "single locale", locales: []string{"ja"}, want: []string{"ja.json"}, absent: []string{"en.json"}},
		{name: "regional variant matches", locales: []string{"ja_JP"}, want: []string{"ja.json"}, absent: []string{"en.json"}},
		{name: "unknown falls back to base", locales: []string{"de", "ja"}, want: []string{"en.json", "ja.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := setupWorkspace(t)

			require.NoError(t, runCompile(t.Context(), cfg, tt.locales))

			for _, name := range tt.want {
				assert.FileExists(t, filepath.Join("locales", name))
			}

			for _, name := range tt.absent {
				assert.NoFileExists(t, filepath.Join("locales", name))
			}
		})
	}

	t.Run("invalid locale", func(t *testing.T) {
		cfg := setupWorkspace(t)

		require.Error(t, runCompile(t.Context(), cfg, []string{"not a locale"}))
	})
}

func TestRunID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr error
	}{
		{name: "message", args: []string{"my message"}, want: "vQhkQx\n"},
		{name: "message with context", args: []string{"my message", "custom context"}, want: "gGUeZH\n"},
		{name: "no message", wantErr: errUsage},
		{name: "too many", args: []string{"a", "b", "c"}, wantErr: errUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			err := runID(&buf, tt.args)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestDispatchErrors(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}

	tests := []struct {
		args    []string
		wantErr error
	}{
		{args: nil, wantErr: errNoCommand},
		{args: []string{"serve"}, wantErr: errUnknownCommand},
		{args: []string{"extract", "now"}, wantErr: errUsage},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			t.Parallel()

			require.ErrorIs(t, dispatch(t.Context(), cfg, tt.args), tt.wantErr)
		})
	}
}
