// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"fmt"

	"golang.org/x/text/language"

	"codeberg.org/pixivfe/msgc/core/msgbuilder"
	"codeberg.org/pixivfe/msgc/extract"
)

// Compile returns the table from message identifier to translated message for
// tag, in the order of messages.
//
// Messages without a translation map to their source message, or to the
// source message wrapped in "⟦...⟧" in strict mode. It returns
// [ErrUnknownLocale] if tag is neither the base locale nor a loaded one.
func (c *Catalogs) Compile(tag language.Tag, messages []extract.Message) (msgbuilder.OrderedMap, error) {
	isBase := tag == c.baseTag

	loc, ok := c.localesByTag[tag.String()]
	if !ok && !isBase {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLocale, tag)
	}

	out := make(msgbuilder.OrderedMap, 0, len(messages))

	var missing int

	for _, m := range messages {
		key := msgid(m)
		text := m.Message

		var found bool

		if loc != nil {
			if m.Context != "" {
				found = loc.IsTranslatedDC(c.domain, key, m.Context)
				if found {
					text = loc.GetDC(c.domain, key, m.Context)
				}
			} else {
				found = loc.IsTranslatedD(c.domain, key)
				if found {
					getD := loc.GetD
					text = getD(c.domain, key)
				}
			}
		}

		if !found && !isBase {
			missing++

			if c.strict {
				logMissingOnce(strippedTagString(tag), buildLogKey(m.Context, key))

				text = "⟦" + text + "⟧"
			}
		}

		out = append(out, msgbuilder.Entry{Key: m.ID, Value: text})
	}

	logger().Info().
		Str("locale", tag.String()).
		Int("messages", len(messages)).
		Int("missing", missing).
		Msg("Compiled catalogue")

	return out, nil
}
