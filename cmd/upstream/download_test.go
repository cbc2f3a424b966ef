package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nameone/upstream/internal/transport"
	"github.com/nameone/upstream/pkg/shard"
)

// fakeDownloader records Download calls without any network I/O.
type fakeDownloader struct {
	calls  []string // URIs in call order
	paths  []string
	failAt int // 1-based call number to fail on; 0 means never
	err    error
}

func (f *fakeDownloader) Download(ctx context.Context, s *shard.Shard, savePath string, chunkSize int64) error {
	f.calls = append(f.calls, s.URI())
	f.paths = append(f.paths, savePath)
	if f.failAt != 0 && len(f.calls) == f.failAt {
		return f.err
	}
	return nil
}

func mustParseURIs(t *testing.T, uris ...string) []*shard.Shard {
	t.Helper()
	shards := make([]*shard.Shard, 0, len(uris))
	for _, uri := range uris {
		s, err := shard.ParseURI(uri)
		if err != nil {
			t.Fatalf("ParseURI(%q): %v", uri, err)
		}
		shards = append(shards, s)
	}
	return shards
}

func TestDownloadShardsOrder(t *testing.T) {
	shards := mustParseURIs(t, "aaa", "bbb?key=cc", "ddd")
	fake := &fakeDownloader{}
	var out bytes.Buffer

	err := downloadShards(context.Background(), fake, shards, "/tmp/out.bin", 1024, false, &out)
	if err != nil {
		t.Fatalf("downloadShards: %v", err)
	}

	want := []string{"aaa", "bbb?key=cc", "ddd"}
	if len(fake.calls) != len(want) {
		t.Fatalf("expected %d calls, got %d", len(want), len(fake.calls))
	}
	for i, uri := range want {
		if fake.calls[i] != uri {
			t.Errorf("call %d: got %q, want %q", i, fake.calls[i], uri)
		}
		if fake.paths[i] != "/tmp/out.bin" {
			t.Errorf("call %d: wrote to %q", i, fake.paths[i])
		}
	}
	if !strings.Contains(out.String(), "Downloading file 1...") {
		t.Errorf("expected per-shard narration, got %q", out.String())
	}
}

func TestDownloadShardsStopsOnError(t *testing.T) {
	shards := mustParseURIs(t, "aaa", "bbb", "ccc")
	boom := errors.New("boom")
	fake := &fakeDownloader{failAt: 2, err: boom}
	var out bytes.Buffer

	err := downloadShards(context.Background(), fake, shards, "/tmp/out.bin", 1024, false, &out)
	if !errors.Is(err, boom) {
		t.Fatalf("expected the shard error, got %v", err)
	}
	if len(fake.calls) != 2 {
		t.Errorf("expected the loop to stop after the failing shard, got %d calls", len(fake.calls))
	}
}

func TestResolveDestExistingPathFailsBeforeAnyTransfer(t *testing.T) {
	tmp := t.TempDir()
	existing := filepath.Join(tmp, "taken.bin")
	if err := os.WriteFile(existing, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	shards := mustParseURIs(t, "aaa")
	fake := &fakeDownloader{}

	_, err := resolveDest(existing, tmp, shards)
	var fileErr *transport.FileError
	if !errors.As(err, &fileErr) {
		t.Fatalf("expected FileError, got %v", err)
	}
	// The destination check happens before a transport even exists; the
	// fake must have seen nothing.
	if len(fake.calls) != 0 {
		t.Errorf("expected zero transfer calls, got %d", len(fake.calls))
	}
}

func TestResolveDestDefaultNames(t *testing.T) {
	tmp := t.TempDir()

	t.Run("single shard uses its hash", func(t *testing.T) {
		shards := mustParseURIs(t, "2032e")
		got, err := resolveDest("", tmp, shards)
		if err != nil {
			t.Fatalf("resolveDest: %v", err)
		}
		if got != filepath.Join(tmp, "2032e") {
			t.Errorf("unexpected save path %q", got)
		}
	})

	t.Run("multiple shards get a generated name", func(t *testing.T) {
		shards := mustParseURIs(t, "aaa", "bbb")
		got, err := resolveDest("", tmp, shards)
		if err != nil {
			t.Fatalf("resolveDest: %v", err)
		}
		name := filepath.Base(got)
		if len(name) != 32 {
			t.Errorf("expected a 32-char hex name, got %q", name)
		}
	})

	t.Run("explicit dest wins", func(t *testing.T) {
		shards := mustParseURIs(t, "aaa")
		got, err := resolveDest(filepath.Join(tmp, "explicit.bin"), tmp, shards)
		if err != nil {
			t.Fatalf("resolveDest: %v", err)
		}
		if got != filepath.Join(tmp, "explicit.bin") {
			t.Errorf("unexpected save path %q", got)
		}
	})
}
