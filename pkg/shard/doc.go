// Package shard provides the types used to split a file into independently
// stored pieces and to address those pieces on the remote API.
//
// A file is split according to a plan of byte ranges ([Plan]), each range is
// uploaded as one shard, and the server answers with an identifying content
// hash. [Shard] is the immutable value carrying that identity; it is built
// either from a server response ([FromJSON]) or from a user-supplied URI
// string ([ParseURI]), never mutated afterwards.
//
// # Shard sizes
//
// Shard sizes are written as a bare byte count or with a single unit suffix:
//
//	1024b  -> 1024 bytes
//	512k   -> 512 KiB
//	250m   -> 250 MiB
//
// See [ParseSize].
//
// # Byte ranges
//
// Ranges are half-open [Start, End). The planner walks the file in fixed
// steps, so the final range's End may point past the end of the file; callers
// reading actual bytes clamp with [Range.Clamp].
package shard
