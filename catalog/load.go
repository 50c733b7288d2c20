// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/leonelquinteros/gotext"
	"golang.org/x/text/language"
)

// BaseLocale is the locale source messages are written in, unless configured otherwise.
const BaseLocale = "en"

// ErrUnknownLocale is returned when compiling for a locale that was not loaded.
var ErrUnknownLocale = errors.New("locale not loaded")

// Catalogs holds the translated catalogues of one gettext domain.
type Catalogs struct {
	domain string
	strict bool

	// baseTag is the locale source messages are written in.
	baseTag language.Tag

	// localesByTag maps canonical BCP 47 tags, for example
	// "en", "ja", "pt-BR", to their loaded gotext.Locale.
	localesByTag map[string]*gotext.Locale

	// supportedTags holds baseTag followed by every loaded locale, sorted.
	supportedTags []language.Tag

	matcher language.Matcher
}

// Option configures [Load].
type Option func(*Catalogs)

// WithStrictMissingKeys makes missing translations visible and logged.
func WithStrictMissingKeys(strict bool) Option {
	return func(c *Catalogs) {
		c.strict = strict
	}
}

// Load reads every <dir>/<locale>.po file in fsys for the given gettext domain
// and constructs a language matcher with base as the default.
//
// The template file, "<domain>.pot", is ignored.
//
// It returns an error if the directory cannot be read or base is not a valid
// tag. Files with unparsable locale names are skipped with a warning.
func Load(fsys fs.FS, dir, domain, base string, opts ...Option) (*Catalogs, error) {
	baseTag, err := ParseLocale(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base locale %q: %w", base, err)
	}

	c := &Catalogs{
		domain:       domain,
		baseTag:      baseTag,
		localesByTag: make(map[string]*gotext.Locale),
	}

	for _, opt := range opts {
		opt(c)
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read po directory: %w", err)
	}

	var tagsList []language.Tag

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".po") {
			continue
		}

		fileName := entry.Name()
		localeName := strings.TrimSuffix(fileName, ".po")

		t, err := ParseLocale(localeName)
		if err != nil {
			logger().Warn().Err(err).Str("file", fileName).Msg("Skipping invalid locale file")

			continue
		}

		canonical := t.String()

		po := gotext.NewPoFS(fsys)
		po.ParseFile(path.Join(dir, fileName))

		loc := gotext.NewLocale("", canonical) // Base path is unused when manually adding translators.
		loc.AddTranslator(domain, po)

		c.localesByTag[canonical] = loc

		tagsList = append(tagsList, t)

		logger().Info().
			Str("locale", canonical).
			Str("domain", domain).
			Msg("Loaded locale")
	}

	// baseTag is first to make it the default fallback for matching.
	all := make([]language.Tag, 0, len(tagsList)+1)
	all = append(all, baseTag)

	sort.Slice(tagsList, func(i, j int) bool { return tagsList[i].String() < tagsList[j].String() })

	for _, t := range tagsList {
		if t == baseTag {
			continue
		}

		all = append(all, t)
	}

	c.matcher = language.NewMatcher(all)
	c.supportedTags = all

	return c, nil
}

// ParseLocale parses a locale name, accepting both "pt_BR" and "pt-BR".
func ParseLocale(name string) (language.Tag, error) {
	return language.Parse(strings.ReplaceAll(name, "_", "-"))
}

// Languages returns the base locale followed by the loaded locales, sorted by
// tag string. The returned slice is a copy.
func (c *Catalogs) Languages() []language.Tag {
	out := make([]language.Tag, len(c.supportedTags))
	copy(out, c.supportedTags)

	return out
}

// Base returns the locale source messages are written in.
func (c *Catalogs) Base() language.Tag {
	return c.baseTag
}

// Match returns the supported locale that best fits the given Accept-Language
// style preferences, or the base locale.
func (c *Catalogs) Match(preferences ...string) language.Tag {
	_, index := language.MatchStrings(c.matcher, preferences...)

	return c.supportedTags[index]
}

// Has reports whether a catalogue was loaded for tag.
func (c *Catalogs) Has(tag language.Tag) bool {
	_, ok := c.localesByTag[tag.String()]

	return ok
}
