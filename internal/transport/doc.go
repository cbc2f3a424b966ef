// Package transport owns the HTTP connection to one storage-API server.
//
// A [Client] is constructed against a base URL and immediately probes the
// server with a short timeout; an unreachable server fails construction with
// [ConnectError] and no usable Client exists afterwards.
//
// [Client.Upload] streams one byte range of a local file as a
// multipart/form-data POST and returns the server-assigned [shard.Shard].
// [Client.Download] streams a shard's bytes to a local path in append mode so
// sequential shard downloads concatenate into the original file.
//
// Every response is classified into either a success or one of the typed
// errors in this package; nothing is swallowed or retried.
package transport
