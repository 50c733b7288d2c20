// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package catalog connects extracted messages to GNU gettext catalogues.

# Templates

[WritePOT] writes a .pot template for translators. Each message becomes one
entry whose msgid is the ICU source message, disambiguated by msgctxt when the
message has a context:

	#. Shelf size
	#: src/shelf.jsx:12
	msgctxt "library"
	msgid "{count, plural, one {# Book} other {# Books}}"
	msgstr ""

Messages that declare their own identifier use it as the msgid instead and
carry the flag comment "#. js-lingui-explicit-id".

# Compiled catalogues

[Load] reads translated .po files, one per locale:

	<dir>/<locale>.po

The locale part may use hyphens or underscores, for example "pt-BR.po" or
"pt_BR.po", and is normalised to a canonical BCP 47 tag. [Catalogs.Compile]
then produces, for one locale, the table from message identifier to translated
ICU message that runtime lookup functions consume.

# Missing translations

Missing translations fall back to the source message. When strict mode is
enabled, they are logged once per locale+key and the returned text is visibly
wrapped as "⟦...⟧". The base locale never reports missing translations.

# go-i18n

[WriteTOML] exports the source messages as a go-i18n message file.
*/
package catalog
