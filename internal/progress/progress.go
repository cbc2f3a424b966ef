package progress

import "io"

// Func receives transfer progress as (bytesTransferred, totalBytes). It is
// called at least once before bytes start moving and then as the transfer
// advances, synchronously on the transfer's goroutine. Implementations must
// return promptly and must not panic; a slow or failing callback is a bug in
// the consumer, not a transfer error. A nil Func means no reporting.
type Func func(current, total int64)

// Reader wraps an io.Reader and reports cumulative bytes read to a Func.
type Reader struct {
	r     io.Reader
	total int64
	read  int64
	fn    Func
}

// NewReader returns a Reader that invokes fn with the running byte count
// after every successful read. fn may be nil.
func NewReader(r io.Reader, total int64, fn Func) *Reader {
	return &Reader{r: r, total: total, fn: fn}
}

func (pr *Reader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	if n > 0 {
		pr.read += int64(n)
		if pr.fn != nil {
			pr.fn(pr.read, pr.total)
		}
	}
	return n, err
}

// BytesRead returns the number of bytes read so far.
func (pr *Reader) BytesRead() int64 { return pr.read }
