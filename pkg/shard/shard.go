package shard

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoHash is returned when constructing a Shard from input that carries no
// content hash. A Shard without a hash cannot address anything.
var ErrNoHash = errors.New("shard: missing content hash")

// Shard identifies one stored piece of a file. It is an immutable value:
// construct it with FromJSON or ParseURI and read it through the accessor
// methods.
type Shard struct {
	hash     string
	key      string
	filename string
}

// shardJSON mirrors the upload response body of the storage API.
type shardJSON struct {
	FileHash string `json:"filehash"`
	Key      string `json:"key,omitempty"`
	Filename string `json:"filename,omitempty"`
}

// FromJSON builds a Shard from a successful upload response body.
func FromJSON(data []byte) (*Shard, error) {
	var sj shardJSON
	if err := json.Unmarshal(data, &sj); err != nil {
		return nil, fmt.Errorf("shard: parse response: %w", err)
	}
	if sj.FileHash == "" {
		return nil, ErrNoHash
	}
	return &Shard{
		hash:     sj.FileHash,
		key:      sj.Key,
		filename: sj.Filename,
	}, nil
}

// ParseURI builds a Shard from a user-supplied URI string. A URI is either a
// bare content hash or "hash?key=decryptkey".
func ParseURI(uri string) (*Shard, error) {
	hash, rest, found := strings.Cut(uri, "?")
	if hash == "" {
		return nil, ErrNoHash
	}

	s := &Shard{hash: hash}
	if found {
		key, ok := strings.CutPrefix(rest, "key=")
		if !ok || key == "" {
			return nil, fmt.Errorf("shard: malformed URI %q", uri)
		}
		s.key = key
	}
	return s, nil
}

// Hash returns the server-assigned content hash.
func (s *Shard) Hash() string { return s.hash }

// Key returns the decryption key component, or "" if the shard has none.
func (s *Shard) Key() string { return s.key }

// Filename returns the display name the server stored, or "".
func (s *Shard) Filename() string { return s.filename }

// URI returns the externally addressable identifier for this shard: the
// content hash, with the decryption key appended when present.
func (s *Shard) URI() string {
	if s.key == "" {
		return s.hash
	}
	return s.hash + "?key=" + s.key
}
