package main

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/nameone/upstream/internal/transport"
	"github.com/nameone/upstream/pkg/shard"
)

// resolveDest turns the optional -dest flag into a validated save path. An
// empty dest derives a name in cwd: a single shard's stored filename or
// hash, or a random hex name when several shards are being joined into one
// new file. The resolved path must not exist and its directory must.
func resolveDest(dest, cwd string, shards []*shard.Shard) (string, error) {
	if dest == "" {
		var name string
		if len(shards) == 1 {
			if name = shards[0].Filename(); name == "" {
				name = shards[0].Hash()
			}
		}
		if name == "" {
			// Slice so %x hex-encodes the raw bytes rather than the
			// Stringer's dashed form.
			u := uuid.New()
			name = fmt.Sprintf("%x", u[:])
		}
		dest = name
	}
	return transport.CheckDest(dest, cwd)
}
