package transport

import "fmt"

// FileError reports a local filesystem precondition violated before any
// network call was made: a missing source file, a destination that already
// exists, or a destination directory that does not. The caller can recover
// by correcting the path.
type FileError struct {
	Path   string
	Reason string
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s", e.Path, e.Reason)
}

// ConnectError reports that the server was unreachable during the
// connectivity probe. It is terminal for the Client being constructed; a new
// Client must be constructed to retry.
type ConnectError struct {
	Server string
	Err    error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("could not connect to server %s: %v", e.Server, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// ResponseError reports a non-success status from the remote API. It carries
// the numeric status, the reason text, and the raw response body for
// diagnostics; it is surfaced to the user verbatim and never retried.
type ResponseError struct {
	Status int
	Reason string
	Body   string
}

func (e *ResponseError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%d %s", e.Status, e.Reason)
	}
	return fmt.Sprintf("received status code %d", e.Status)
}

// ChunkError reports an attempt to download a shard that carries no content
// hash. This is a usage error in the calling code, not a runtime condition.
type ChunkError struct{}

func (e *ChunkError) Error() string {
	return "shard has no content hash to download by"
}
