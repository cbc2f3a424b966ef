package shard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSizeFormat is returned by ParseSize for input it cannot
// interpret. Unknown suffixes are a hard error, never a silent default.
var ErrInvalidSizeFormat = errors.New("shard: invalid size format")

const (
	// KiB is one kibibyte in bytes.
	KiB int64 = 1024
	// MiB is one mebibyte in bytes.
	MiB int64 = 1024 * 1024
)

// ParseSize parses a human shard-size string into a byte count. Input is
// either all decimal digits (a bare byte count) or an integer magnitude
// followed by one of the case-insensitive unit suffixes b, k or m:
//
//	"100"   -> 100
//	"1024b" -> 1024
//	"512k"  -> 512 * 1024
//	"250m"  -> 250 * 1024 * 1024
func ParseSize(input string) (int64, error) {
	if input == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidSizeFormat)
	}

	if isDigits(input) {
		n, err := strconv.ParseInt(input, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidSizeFormat, input)
		}
		return n, nil
	}

	unit := strings.ToLower(input[len(input)-1:])
	magnitude, err := strconv.ParseInt(input[:len(input)-1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSizeFormat, input)
	}

	switch unit {
	case "b":
		return magnitude, nil
	case "k":
		return magnitude * KiB, nil
	case "m":
		return magnitude * MiB, nil
	default:
		return 0, fmt.Errorf("%w: unknown suffix %q in %q", ErrInvalidSizeFormat, unit, input)
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
