// Package progress defines the progress-reporting contract for shard
// transfers and a terminal bar that implements it.
//
// [Func] is the sink: a callback invoked with (bytesTransferred, totalBytes)
// from inside the transfer's I/O path. It is advisory only and must never
// abort the transfer. A nil Func disables reporting.
//
// [Bar] renders a single shard's upload to a terminal, lazily initializing
// itself on the first callback invocation:
//
//	bar := progress.NewBar(progress.Options{Label: "Uploading shard 1/4"})
//	sh, err := client.Upload(ctx, path, start, size, bar.Callback())
//	bar.Finish()
//
// The terminal "finished" signal is driven by the caller via [Bar.Finish]
// once the transfer returns, not by the callback itself.
package progress
