package transport

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nameone/upstream/internal/progress"
	"github.com/nameone/upstream/pkg/shard"
)

// DefaultChunkSize is the write granularity used by Download when the caller
// passes no chunk size.
const DefaultChunkSize = 8096

// Options configures a Client.
type Options struct {
	// ProbeTimeout bounds the connectivity probe at construction.
	// Default: 1s
	ProbeTimeout time.Duration

	// HeaderTimeout bounds how long a request may wait for response
	// headers. Body transfer is not bounded; shards can be large.
	// Default: 30s
	HeaderTimeout time.Duration
}

// DefaultOptions returns options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		ProbeTimeout:  time.Second,
		HeaderTimeout: 30 * time.Second,
	}
}

// Client talks to one storage-API server. Construct it with New; a Client
// that failed construction must not be used.
type Client struct {
	server string
	client *http.Client
}

// New creates a Client for the given server base URL and probes the server
// for connectivity. An unreachable server fails with ConnectError.
func New(server string, opts Options) (*Client, error) {
	if opts.ProbeTimeout == 0 {
		opts.ProbeTimeout = time.Second
	}
	if opts.HeaderTimeout == 0 {
		opts.HeaderTimeout = 30 * time.Second
	}

	server = strings.TrimRight(server, "/")

	c := &Client{
		server: server,
		client: &http.Client{
			Transport: &http.Transport{
				ResponseHeaderTimeout: opts.HeaderTimeout,
			},
		},
	}

	if err := c.probe(opts.ProbeTimeout); err != nil {
		return nil, err
	}
	return c, nil
}

// Server returns the base URL this client talks to.
func (c *Client) Server() string { return c.server }

// probe issues a lightweight GET against the server root. Any transport
// failure or error status means the server is unusable.
func (c *Client) probe(timeout time.Duration) error {
	probeClient := &http.Client{Timeout: timeout}
	resp, err := probeClient.Get(c.server)
	if err != nil {
		return &ConnectError{Server: c.server, Err: err}
	}
	resp.Body.Close()
	if resp.StatusCode >= 400 {
		return &ConnectError{
			Server: c.server,
			Err:    fmt.Errorf("probe returned status %d", resp.StatusCode),
		}
	}
	return nil
}

// Upload reads the byte range [start, start+shardSize) of the file at path,
// clamped to end-of-file, and transmits it as a multipart/form-data POST to
// the server's upload endpoint. fn, if non-nil, receives (bytesSent, total)
// progress; it is called once before the transfer starts.
//
// The source must exist and be a regular file, checked before any network
// I/O. A 201 response yields the server-assigned Shard; every other status
// yields a typed error.
func (c *Client) Upload(ctx context.Context, path string, start, shardSize int64, fn progress.Func) (*shard.Shard, error) {
	if shardSize <= 0 {
		return nil, shard.ErrInvalidShardSize
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, &FileError{Path: path, Reason: "not a file or not found"}
	}

	total := info.Size() - start
	if total < 0 {
		total = 0
	}
	if total > shardSize {
		total = shardSize
	}

	if fn != nil {
		fn(0, total)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Path: path, Reason: "not a file or not found"}
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		defer f.Close()

		part, err := mw.CreateFormFile("file", filepath.Base(path))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		src := progress.NewReader(io.NewSectionReader(f, start, total), total, fn)
		if _, err := io.Copy(part, src); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.server+"/api/upload", pr)
	if err != nil {
		pr.Close()
		return nil, fmt.Errorf("transport: create upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transport: upload request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("transport: read upload response: %w", err)
	}

	// Status codes are server API contract; keep the mapping exact.
	switch resp.StatusCode {
	case http.StatusCreated:
		return shard.FromJSON(body)
	case http.StatusPaymentRequired:
		return nil, &ResponseError{Status: resp.StatusCode, Reason: "Payment required.", Body: string(body)}
	case http.StatusNotFound:
		return nil, &ResponseError{Status: resp.StatusCode, Reason: "API call not found.", Body: string(body)}
	case http.StatusInternalServerError:
		return nil, &ResponseError{Status: resp.StatusCode, Reason: "Server error.", Body: string(body)}
	default:
		return nil, &ResponseError{
			Status: resp.StatusCode,
			Reason: http.StatusText(resp.StatusCode),
			Body:   string(body),
		}
	}
}

// Download streams the shard's bytes from the server to savePath, writing in
// chunkSize pieces. The file is opened in append mode so sequential shard
// downloads into the same path concatenate in call order. The caller owns
// exclusive access to savePath for the duration of the whole operation.
//
// The shard must carry a content hash and savePath's directory must exist;
// both are checked before any network I/O. Only a 200 response succeeds.
func (c *Client) Download(ctx context.Context, s *shard.Shard, savePath string, chunkSize int64) error {
	if s == nil || s.Hash() == "" {
		return &ChunkError{}
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	dir := filepath.Dir(savePath)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return &FileError{Path: dir, Reason: "is not a valid path"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.server+"/api/download/"+s.URI(), nil)
	if err != nil {
		return fmt.Errorf("transport: create download request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("transport: download request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &ResponseError{
			Status: resp.StatusCode,
			Reason: http.StatusText(resp.StatusCode),
			Body:   string(body),
		}
	}

	f, err := os.OpenFile(savePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("transport: open destination: %w", err)
	}

	buf := make([]byte, chunkSize)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := f.Write(buf[:n]); writeErr != nil {
				f.Close()
				return fmt.Errorf("transport: write shard: %w", writeErr)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			f.Close()
			return fmt.Errorf("transport: read shard: %w", readErr)
		}
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("transport: close destination: %w", err)
	}
	return nil
}
