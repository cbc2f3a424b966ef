package progress

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"
)

func TestReaderReportsProgress(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB}, 1000)

	type call struct{ current, total int64 }
	var calls []call

	r := NewReader(bytes.NewReader(data), int64(len(data)), func(current, total int64) {
		calls = append(calls, call{current, total})
	})

	buf := make([]byte, 256)
	if _, err := io.CopyBuffer(io.Discard, onlyReader{r}, buf); err != nil {
		t.Fatalf("copy: %v", err)
	}

	if len(calls) == 0 {
		t.Fatal("callback was never invoked")
	}
	last := calls[len(calls)-1]
	if last.current != int64(len(data)) || last.total != int64(len(data)) {
		t.Errorf("final call was (%d, %d), want (%d, %d)",
			last.current, last.total, len(data), len(data))
	}
	for i := 1; i < len(calls); i++ {
		if calls[i].current < calls[i-1].current {
			t.Errorf("progress went backwards at call %d: %d -> %d",
				i, calls[i-1].current, calls[i].current)
		}
	}
	if r.BytesRead() != int64(len(data)) {
		t.Errorf("BytesRead = %d, want %d", r.BytesRead(), len(data))
	}
}

func TestReaderNilFunc(t *testing.T) {
	r := NewReader(strings.NewReader("hello"), 5, nil)
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(out) != "hello" {
		t.Errorf("read %q, want %q", out, "hello")
	}
}

// onlyReader hides ReadFrom/WriteTo so CopyBuffer actually uses our buffer.
type onlyReader struct{ io.Reader }

func TestBarRendersAndFinishes(t *testing.T) {
	var buf bytes.Buffer
	bar := NewBar(Options{
		Label:          "Uploading shard 1/2",
		Output:         &buf,
		Width:          10,
		UpdateInterval: time.Nanosecond,
	})

	fn := bar.Callback()
	fn(0, 100)
	fn(50, 100)
	fn(100, 100)
	bar.Finish()
	bar.Finish() // idempotent

	out := buf.String()
	if !strings.Contains(out, "Uploading shard 1/2") {
		t.Errorf("label missing from output: %q", out)
	}
	if !strings.Contains(out, "100.0%") {
		t.Errorf("completion percentage missing from output: %q", out)
	}
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("expected exactly one newline after Finish, got %d", got)
	}
}

func TestBarNeverStartedFinish(t *testing.T) {
	var buf bytes.Buffer
	bar := NewBar(Options{Output: &buf})
	bar.Finish()
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
