package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/nameone/upstream/internal/progress"
	"github.com/nameone/upstream/pkg/shard"
)

// fakeUploader returns Shard URIs derived from the requested range.
type fakeUploader struct {
	starts []int64
	failAt int // 1-based call number to fail on; 0 means never
	err    error
}

func (f *fakeUploader) Upload(ctx context.Context, path string, start, shardSize int64, fn progress.Func) (*shard.Shard, error) {
	f.starts = append(f.starts, start)
	if f.failAt != 0 && len(f.starts) == f.failAt {
		return nil, f.err
	}
	if fn != nil {
		fn(0, shardSize)
		fn(shardSize, shardSize)
	}
	return shard.ParseURI(fmt.Sprintf("hash-%d", start))
}

func TestUploadShardsSequentialOrder(t *testing.T) {
	ranges, err := shard.Plan(10_000, 3000)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	fake := &fakeUploader{}
	var out, barOut bytes.Buffer

	uris, err := uploadShards(context.Background(), fake, "file.bin", ranges, 3000, &out, &barOut)
	if err != nil {
		t.Fatalf("uploadShards: %v", err)
	}

	wantStarts := []int64{0, 3000, 6000, 9000}
	if len(fake.starts) != len(wantStarts) {
		t.Fatalf("expected %d uploads, got %d", len(wantStarts), len(fake.starts))
	}
	for i, s := range wantStarts {
		if fake.starts[i] != s {
			t.Errorf("upload %d started at %d, want %d", i, fake.starts[i], s)
		}
	}

	if len(uris) != 4 {
		t.Fatalf("expected 4 URIs, got %d", len(uris))
	}
	for i, uri := range uris {
		want := fmt.Sprintf("Shard %d - URI: %s", i+1, uri)
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestUploadShardsPrintsURIsBeforeFailure(t *testing.T) {
	ranges, err := shard.Plan(9000, 3000)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	boom := errors.New("boom")
	fake := &fakeUploader{failAt: 3, err: boom}
	var out, barOut bytes.Buffer

	uris, err := uploadShards(context.Background(), fake, "file.bin", ranges, 3000, &out, &barOut)
	if !errors.Is(err, boom) {
		t.Fatalf("expected the upload error, got %v", err)
	}
	// Successfully uploaded shards remain recoverable by their URIs.
	if len(uris) != 2 {
		t.Fatalf("expected 2 URIs from the successful shards, got %d", len(uris))
	}
	if !strings.Contains(out.String(), "Shard 2 - URI: "+uris[1]) {
		t.Errorf("URIs of completed shards were not printed:\n%s", out.String())
	}
}

func TestRunUnknownCommand(t *testing.T) {
	if got := run([]string{"frobnicate"}); got != ExitInvalidArgs {
		t.Errorf("expected ExitInvalidArgs, got %d", got)
	}
}

func TestRunNoArgs(t *testing.T) {
	if got := run(nil); got != ExitInvalidArgs {
		t.Errorf("expected ExitInvalidArgs, got %d", got)
	}
}
