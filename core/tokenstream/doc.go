// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package tokenstream decodes the JSON token streams produced by source
front-ends into [msgbuilder.Token] values.

A document is either an array of messages or an object with a "messages"
array:

	{"messages": [{
	  "context": "library",
	  "comment": "Shelf size",
	  "origin": ["src/shelf.jsx", 12],
	  "whitespace": "markup",
	  "tokens": [
	    {"text": "You have "},
	    {"choice": {
	      "value": {"type": "Identifier", "name": "count"},
	      "format": "plural",
	      "cases": [
	        {"attr": "one", "tokens": [{"text": "# book"}]},
	        {"attr": "other", "tokens": [{"open": {"payload": "<b>"}}, {"text": "# books"}, {"close": true}]}
	      ]
	    }}
	  ]
	}]}

Tokens are objects with exactly one of "text", "expr", "open", "close" or
"choice". Choice cases use "key" for object-literal keys (strings or numbers)
and "attr" for markup attributes; "offset" sets the offset directly. A case
named offset outside a select choice is the offset directive, and its text is
the offset value.

Expressions describe only the shape that matters for placeholder naming:

	{"type": "Identifier", "name": "count"}
	{"type": "ObjectExpression", "properties": [{"shorthand": "name"}, {"key": "x", "value": EXPR}]}
	{"type": "TSAsExpression", "expression": EXPR}

Any other shape is an opaque expression. An expression's "payload" member, or
the whole expression when there is none, is carried into the values map
untouched. Object key order in payloads is preserved.
*/
package tokenstream
