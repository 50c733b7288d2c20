// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"sync"

	"github.com/leonelquinteros/gotext"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

// missingKeyOnce deduplicates WARN logs for missing msgids in strict mode.
// The key is locale+"\x00"+msgid.
var missingKeyOnce sync.Map

// logger returns the global logger tagged with this subsystem.
func logger() *zerolog.Logger {
	l := log.With().Str("sys", "catalog").Logger()

	return &l
}

// logMissingOnce logs a missing translation warning once per (locale, msgid) pair.
func logMissingOnce(locale, key string) {
	id := locale + "\x00" + key
	if _, loaded := missingKeyOnce.LoadOrStore(id, struct{}{}); !loaded {
		logger().Warn().
			Str("locale", locale).
			Str("key", key).
			Msg("Missing translation")
	}
}

// strippedTagString removes variants to form a stable key using base, script and region only.
func strippedTagString(tag language.Tag) string {
	b, s, r := tag.Raw()
	stripped, _ := language.Compose(b, s, r)

	return stripped.String()
}

// buildLogKey composes the logging key like gettext "ctx<sep>msgid" when context is present.
func buildLogKey(ctxKey, id string) string {
	if ctxKey != "" {
		return ctxKey + gotext.EotSeparator + id
	}

	return id
}
