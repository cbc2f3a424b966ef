package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/nameone/upstream/internal/config"
	"github.com/nameone/upstream/internal/progress"
	"github.com/nameone/upstream/internal/transport"
	"github.com/nameone/upstream/pkg/shard"
)

// runUpload splits a local file into shards and uploads them one at a time,
// printing each shard's URI as it completes.
func runUpload(args []string) int {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)

	server := fs.String("server", "", "Storage node to connect to")
	shardSize := fs.String("shard-size", "", "Size of shards to break the file into, max 250m (e.g. 25m, 512k, 4096)")
	configPath := fs.String("config", "", "Path to YAML config file")
	verbose := fs.Bool("v", false, "Verbose output")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: upstream upload [options] <file>

Split a local file into fixed-size shards and upload each shard to the
storage API. Prints one URI per shard and, on completion, a ready-to-use
download command.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one file to upload is required")
		fs.Usage()
		return ExitInvalidArgs
	}
	path := fs.Arg(0)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	override := config.Config{Server: *server, Verbose: *verbose}
	if *shardSize != "" {
		size, err := shard.ParseSize(*shardSize)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid shard size: %v\n", err)
			return ExitInvalidArgs
		}
		override.ShardSize = size
	}
	cfg = cfg.Merge(override)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	// Fail fast on the source file before touching the network.
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		fmt.Fprintf(os.Stderr, "%s not a file or not found\n", path)
		return ExitFileError
	}

	ranges, err := shard.Plan(info.Size(), cfg.ShardSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	if cfg.Verbose {
		for i, r := range ranges {
			fmt.Printf("Shard %d - Start: %d; End: %d\n", i, r.Start, r.End)
		}
		fmt.Printf("File will be uploaded in %d piece(s).\n", len(ranges))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\n[upstream] Received interrupt, shutting down...")
		cancel()
	}()

	client, err := transport.New(cfg.Server, transport.Options{
		ProbeTimeout:  cfg.ProbeTimeout,
		HeaderTimeout: cfg.Timeout,
	})
	if err != nil {
		return renderError(err, cfg.Verbose)
	}

	uris, err := uploadShards(ctx, client, path, ranges, cfg.ShardSize, os.Stdout, os.Stderr)
	if err != nil {
		// URIs of shards uploaded before the failure were already printed,
		// so the user can still recover those pieces.
		return renderError(err, cfg.Verbose)
	}

	fmt.Println()
	fmt.Println("Download this file by using the following command:")
	fmt.Printf("upstream download --dest <filename> --uri %s\n", strings.Join(uris, " "))

	return ExitSuccess
}

// shardUploader is the slice of the transport client the upload loop needs.
type shardUploader interface {
	Upload(ctx context.Context, path string, start, shardSize int64, fn progress.Func) (*shard.Shard, error)
}

// uploadShards uploads the planned ranges sequentially, in order, printing
// each resulting URI to out as it completes. It returns the URIs collected
// so far even when a shard fails partway through.
func uploadShards(ctx context.Context, up shardUploader, path string, ranges []shard.Range, shardSize int64, out, barOut io.Writer) ([]string, error) {
	uris := make([]string, 0, len(ranges))
	for i, rng := range ranges {
		bar := progress.NewBar(progress.Options{
			Label:  fmt.Sprintf("Uploading shard %d/%d", i+1, len(ranges)),
			Output: barOut,
		})
		s, err := up.Upload(ctx, path, rng.Start, shardSize, bar.Callback())
		bar.Finish()
		if err != nil {
			return uris, err
		}
		fmt.Fprintf(out, "Shard %d - URI: %s\n", i+1, s.URI())
		uris = append(uris, s.URI())
	}
	return uris, nil
}
