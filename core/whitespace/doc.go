// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package whitespace normalises whitespace in extracted message text.

Two independent modes exist:

  - [NormalizeJS] is used for messages written as template literals. Line
    continuations become a single space, newlines followed by indentation become
    a single newline.
  - [NormalizeMarkup] is used for messages written inside markup. Indentation
    touching a tag or expression boundary is removed, remaining line breaks
    become a single space, and padding inside choice case bodies is stripped.

Both functions are pure and idempotent. Their output is compared across tool
versions by translation tooling, so the exact replacement rules are part of the
output format.
*/
package whitespace
