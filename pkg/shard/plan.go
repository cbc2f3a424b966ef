package shard

import "errors"

// ErrInvalidShardSize is returned by Plan when the shard size is not
// positive.
var ErrInvalidShardSize = errors.New("shard: shard size must be positive")

// Range is a half-open byte range [Start, End) within a source file. The
// planner walks in whole shard-size steps, so End may exceed the file size;
// use Clamp before reading actual bytes.
type Range struct {
	Start int64
	End   int64
}

// Len returns the nominal length of the range.
func (r Range) Len() int64 { return r.End - r.Start }

// Clamp returns the range with End limited to fileSize.
func (r Range) Clamp(fileSize int64) Range {
	if r.End > fileSize {
		r.End = fileSize
	}
	return r
}

// Plan computes the ordered byte ranges covering a file of fileSize bytes in
// shards of shardSize bytes. It produces ceil(fileSize/shardSize) contiguous
// ranges; their order is the order shards must later be reassembled in.
func Plan(fileSize, shardSize int64) ([]Range, error) {
	if shardSize <= 0 {
		return nil, ErrInvalidShardSize
	}
	if fileSize < 0 {
		return nil, errors.New("shard: negative file size")
	}

	count := (fileSize + shardSize - 1) / shardSize

	ranges := make([]Range, 0, count)
	start, end := int64(0), shardSize
	for i := int64(0); i < count; i++ {
		ranges = append(ranges, Range{Start: start, End: end})
		start = end
		end += shardSize
	}
	return ranges, nil
}
