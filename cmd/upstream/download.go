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
	"github.com/nameone/upstream/internal/transport"
	"github.com/nameone/upstream/pkg/shard"
)

// stringList collects repeated flag values.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, " ") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// runDownload fetches one or more shards by URI and concatenates them, in
// the given order, into a single destination file.
func runDownload(args []string) int {
	fs := flag.NewFlagSet("download", flag.ExitOnError)

	var uris stringList
	fs.Var(&uris, "uri", "URI of a shard to download (repeatable; extra URIs may follow as plain arguments)")
	dest := fs.String("dest", "", "Destination file (must not exist; auto-generated when empty)")
	server := fs.String("server", "", "Storage node to connect to")
	chunkSize := fs.Int64("shard-size", 0, "Disk write granularity in bytes")
	configPath := fs.String("config", "", "Path to YAML config file")
	verbose := fs.Bool("v", false, "Verbose output")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: upstream download [options] --uri URI [URI ...]

Download shards by URI and write their bytes, concatenated in the given
order, to the destination file.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}
	// Space-separated URIs after the flags belong to -uri.
	uris = append(uris, fs.Args()...)
	if len(uris) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one -uri is required")
		fs.Usage()
		return ExitInvalidArgs
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}
	cfg = cfg.Merge(config.Config{Server: *server, ChunkSize: *chunkSize, Verbose: *verbose})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	shards := make([]*shard.Shard, 0, len(uris))
	for _, uri := range uris {
		s, err := shard.ParseURI(uri)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitInvalidArgs
		}
		shards = append(shards, s)
	}
	if cfg.Verbose {
		fmt.Printf("There are %d shard(s) to download.\n", len(shards))
	}

	// Resolve and validate the destination before any network I/O.
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitGeneralError
	}
	savePath, err := resolveDest(*dest, cwd, shards)
	if err != nil {
		return renderError(err, cfg.Verbose)
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

	if cfg.Verbose {
		fmt.Printf("Connecting to %s...\n", cfg.Server)
	}
	client, err := transport.New(cfg.Server, transport.Options{
		ProbeTimeout:  cfg.ProbeTimeout,
		HeaderTimeout: cfg.Timeout,
	})
	if err != nil {
		return renderError(err, cfg.Verbose)
	}

	if err := downloadShards(ctx, client, shards, savePath, cfg.ChunkSize, cfg.Verbose, os.Stdout); err != nil {
		return renderError(err, cfg.Verbose)
	}

	fmt.Printf("\nDownloaded to %s.\n", savePath)
	return ExitSuccess
}

// shardDownloader is the slice of the transport client the download loop
// needs.
type shardDownloader interface {
	Download(ctx context.Context, s *shard.Shard, savePath string, chunkSize int64) error
}

// downloadShards downloads shards sequentially in the order given, appending
// each one's bytes to savePath. Order is reassembly order; a failed shard
// aborts the whole operation.
func downloadShards(ctx context.Context, dl shardDownloader, shards []*shard.Shard, savePath string, chunkSize int64, verbose bool, out io.Writer) error {
	for i, s := range shards {
		if verbose {
			fmt.Fprintf(out, "Downloading file %s...\n", s.URI())
		} else {
			fmt.Fprintf(out, "Downloading file %d...\n", i+1)
		}
		if err := dl.Download(ctx, s, savePath, chunkSize); err != nil {
			return err
		}
	}
	return nil
}
