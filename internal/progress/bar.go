package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Options configures a Bar.
type Options struct {
	// Label is printed before the percentage, e.g. "Uploading shard 1/4".
	Label string

	// Output is where the bar is rendered.
	// Default: os.Stderr
	Output io.Writer

	// Width is the number of cells in the bar.
	// Default: 30
	Width int

	// UpdateInterval limits how often the bar redraws.
	// Default: 100ms
	UpdateInterval time.Duration
}

// Bar renders the progress of a single transfer as one updating terminal
// line with percentage, speed and ETA. It initializes lazily on the first
// callback invocation, mirroring the contract in this package's doc.
type Bar struct {
	opts Options

	started    bool
	startTime  time.Time
	lastUpdate time.Time
	finished   bool
}

// NewBar creates a progress bar.
func NewBar(opts Options) *Bar {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.Width <= 0 {
		opts.Width = 30
	}
	if opts.UpdateInterval == 0 {
		opts.UpdateInterval = 100 * time.Millisecond
	}
	return &Bar{opts: opts}
}

// Callback returns the Func to hand to a transfer. The Bar is not safe for
// use by concurrent transfers; one Bar reports one shard.
func (b *Bar) Callback() Func {
	return func(current, total int64) {
		now := time.Now()
		if !b.started {
			b.started = true
			b.startTime = now
			b.render(current, total, now)
			return
		}
		// Throttle redraws, but always show completion.
		if current < total && now.Sub(b.lastUpdate) < b.opts.UpdateInterval {
			return
		}
		b.render(current, total, now)
	}
}

// Finish terminates the bar line. Safe to call multiple times and safe to
// call on a bar that never started.
func (b *Bar) Finish() {
	if !b.started || b.finished {
		return
	}
	b.finished = true
	fmt.Fprintln(b.opts.Output)
}

func (b *Bar) render(current, total int64, now time.Time) {
	b.lastUpdate = now

	var percent float64
	if total > 0 {
		percent = float64(current) / float64(total) * 100
	} else if current == 0 {
		percent = 100 // zero-length shard, nothing to move
	}

	filled := 0
	if total > 0 {
		filled = int(float64(b.opts.Width) * float64(current) / float64(total))
	} else {
		filled = b.opts.Width
	}
	if filled > b.opts.Width {
		filled = b.opts.Width
	}
	bar := strings.Repeat("#", filled) + strings.Repeat(" ", b.opts.Width-filled)

	elapsed := now.Sub(b.startTime).Seconds()
	var speed float64
	if elapsed > 0 {
		speed = float64(current) / elapsed
	}

	eta := "--"
	if speed > 0 && total > current {
		remaining := float64(total-current) / speed
		eta = formatDuration(time.Duration(remaining * float64(time.Second)))
	} else if current >= total {
		eta = "0s"
	}

	fmt.Fprintf(b.opts.Output, "\r%s: %5.1f%% [%s] %s/s ETA: %s ",
		b.opts.Label,
		percent,
		bar,
		FormatBytes(int64(speed)),
		eta,
	)
}

// FormatBytes formats a byte count as a human-readable string.
func FormatBytes(b int64) string {
	const (
		kib = 1024
		mib = kib * 1024
		gib = mib * 1024
	)

	switch {
	case b >= gib:
		return fmt.Sprintf("%.2f GiB", float64(b)/float64(gib))
	case b >= mib:
		return fmt.Sprintf("%.2f MiB", float64(b)/float64(mib))
	case b >= kib:
		return fmt.Sprintf("%.2f KiB", float64(b)/float64(kib))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
}
