// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package extract runs the extraction pipeline: it reads token stream documents,
compiles every message into a descriptor and merges descriptors that share an
identifier.

Files are matched with [fs.Glob] patterns relative to [Options.FS]. Decoding
and compilation run concurrently, bounded by [Options.Workers]; merging happens
afterwards in input order, so the output does not depend on scheduling.

When two different messages hash to the same identifier, the one from the
earliest input wins and a warning is logged.
*/
package extract
