// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"errors"
	"fmt"
	"io"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"codeberg.org/pixivfe/msgc/extract"
)

// ErrTOMLMismatch is returned when a generated message file does not read
// back as the messages it was generated from.
var ErrTOMLMismatch = errors.New("message file does not round-trip")

// tomlMessage is a go-i18n message in its TOML form.
type tomlMessage struct {
	Description string `toml:"description,omitempty"`
	Other       string `toml:"other"`
}

// WriteTOML writes messages as a go-i18n message file for lang, keyed by
// message identifier. The file is parsed back with go-i18n before anything is
// written.
func WriteTOML(w io.Writer, lang language.Tag, messages []extract.Message) error {
	doc := make(map[string]tomlMessage, len(messages))
	for _, m := range messages {
		doc[m.ID] = tomlMessage{Description: m.Comment, Other: m.Message}
	}

	out, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode message file: %w", err)
	}

	if err := verifyTOML(out, lang, messages); err != nil {
		return err
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write message file: %w", err)
	}

	return nil
}

// TOMLFileName returns the go-i18n file name for lang, such as "active.en.toml".
func TOMLFileName(lang language.Tag) string {
	return "active." + lang.String() + ".toml"
}

func verifyTOML(data []byte, lang language.Tag, messages []extract.Message) error {
	bundle := i18n.NewBundle(lang)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	file, err := bundle.ParseMessageFileBytes(data, TOMLFileName(lang))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTOMLMismatch, err)
	}

	if len(file.Messages) != len(messages) {
		return fmt.Errorf("%w: %d messages read back, want %d", ErrTOMLMismatch, len(file.Messages), len(messages))
	}

	return nil
}
