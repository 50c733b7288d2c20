// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package extract

import (
	"cmp"
	"slices"

	"codeberg.org/pixivfe/msgc/core/cache"
	"codeberg.org/pixivfe/msgc/core/descriptor"
)

// Message is a descriptor together with where it was found.
type Message struct {
	descriptor.Descriptor

	// Origins are "file" or "file:line" references, sorted and unique.
	Origins []string

	// Explicit is set when the identifier was declared in source rather than hashed.
	Explicit bool
}

// Result is the merged output of [Run].
type Result struct {
	// Messages are sorted by context, message and identifier.
	Messages []Message

	Files int
	Cache cache.Stats
}

// merge folds compiled descriptors into unique messages. jobs and compiled
// are parallel slices in input order.
func merge(jobs []job, compiled []descriptor.Descriptor) *Result {
	byID := make(map[string]int, len(compiled))

	var messages []Message

	for i, d := range compiled {
		origin := jobs[i].msg.Origin
		if origin == "" {
			origin = jobs[i].file
		}

		idx, seen := byID[d.ID]
		if !seen {
			byID[d.ID] = len(messages)
			messages = append(messages, Message{
				Descriptor: d,
				Origins:    []string{origin},
				Explicit:   jobs[i].msg.Source.IsExplicit(),
			})

			continue
		}

		existing := &messages[idx]

		if existing.Message != d.Message || existing.Context != d.Context {
			logger().Warn().
				Str("id", d.ID).
				Str("kept", existing.Message).
				Str("dropped", d.Message).
				Str("origin", origin).
				Bool("explicit", existing.Explicit).
				Msg("Message identifier collision")

			continue
		}

		existing.Origins = append(existing.Origins, origin)

		if existing.Comment == "" {
			existing.Comment = d.Comment
		}
	}

	for i := range messages {
		slices.Sort(messages[i].Origins)
		messages[i].Origins = slices.Compact(messages[i].Origins)
	}

	slices.SortFunc(messages, func(a, b Message) int {
		return cmp.Or(
			cmp.Compare(a.Context, b.Context),
			cmp.Compare(a.Message, b.Message),
			cmp.Compare(a.ID, b.ID),
		)
	})

	return &Result{Messages: messages}
}
