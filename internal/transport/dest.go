package transport

import (
	"os"
	"path/filepath"
)

// CheckDest validates a user-supplied download destination and returns the
// resolved save path. The destination must not already exist and its
// containing directory must exist; a bare filename resolves against cwd.
// Run this before any network I/O so a bad path never costs a transfer.
func CheckDest(dest, cwd string) (string, error) {
	if _, err := os.Stat(dest); err == nil {
		return "", &FileError{Path: dest, Reason: "already exists"}
	}

	dir, name := filepath.Split(dest)
	if dir == "" {
		dir = cwd
	}
	if name == "" {
		return "", &FileError{Path: dest, Reason: "is not a valid path"}
	}

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", &FileError{Path: dir, Reason: "is not a valid path"}
	}

	return filepath.Join(dir, name), nil
}
