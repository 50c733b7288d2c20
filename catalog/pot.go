// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"fmt"
	"io"
	"strings"
	"time"

	"codeberg.org/pixivfe/msgc/extract"
)

// ExplicitIDFlag marks entries whose msgid is a declared identifier rather
// than the source message.
const ExplicitIDFlag = "js-lingui-explicit-id"

// Header holds the template metadata.
type Header struct {
	Project  string
	Version  string
	Language string
	Created  time.Time
}

// WritePOT writes messages as a gettext template.
func WritePOT(w io.Writer, h Header, messages []extract.Message) error {
	var b strings.Builder

	writeHeader(&b, h)

	for i, m := range messages {
		if m.Comment != "" {
			for line := range strings.SplitSeq(m.Comment, "\n") {
				fmt.Fprintf(&b, "#. %s\n", line)
			}
		}

		if m.Explicit {
			fmt.Fprintf(&b, "#. %s\n", ExplicitIDFlag)
		}

		if len(m.Origins) > 0 {
			fmt.Fprintf(&b, "#: %s\n", strings.Join(m.Origins, " "))
		}

		if m.Context != "" {
			fmt.Fprintf(&b, "msgctxt %s\n", quote(m.Context))
		}

		fmt.Fprintf(&b, "msgid %s\n", quote(msgid(m)))
		fmt.Fprintf(&b, "msgstr \"\"\n")

		// Add a separating blank line, but not after the very last entry.
		if i < len(messages)-1 {
			fmt.Fprintln(&b)
		}
	}

	_, err := io.WriteString(w, b.String())

	return err
}

func writeHeader(b *strings.Builder, h Header) {
	lang := h.Language
	if lang == "" {
		lang = BaseLocale
	}

	fmt.Fprintln(b, `msgid ""`)
	fmt.Fprintln(b, `msgstr ""`)
	fmt.Fprintf(b, "\"Project-Id-Version: %s %s\\n\"\n", h.Project, h.Version)
	fmt.Fprintf(b, "\"POT-Creation-Date: %s\\n\"\n", h.Created.UTC().Format("2006-01-02 15:04+0000"))
	fmt.Fprintf(b, "\"Language: %s\\n\"\n", lang)
	fmt.Fprintln(b, `"MIME-Version: 1.0\n"`)
	fmt.Fprintln(b, `"Content-Type: text/plain; charset=UTF-8\n"`)
	fmt.Fprintln(b, `"Content-Transfer-Encoding: 8bit\n"`)
	fmt.Fprintln(b, `"X-Generator: msgc\n"`)
	fmt.Fprintln(b)
}

// msgid is the lookup key of m in a catalogue.
func msgid(m extract.Message) string {
	if m.Explicit {
		return m.ID
	}

	return m.Message
}

var poEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
)

// quote renders s as a PO string literal.
func quote(s string) string {
	return `"` + poEscaper.Replace(s) + `"`
}
