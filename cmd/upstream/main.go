package main

import (
	"errors"
	"fmt"
	"os"

	goerrors "github.com/go-errors/errors"

	"github.com/nameone/upstream/internal/config"
	"github.com/nameone/upstream/internal/transport"
)

const version = "1.0.0"

// Exit codes
const (
	ExitSuccess       = 0
	ExitFileError     = 1
	ExitInvalidArgs   = 2
	ExitConnectError  = 3
	ExitResponseError = 4
	ExitGeneralError  = 5
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return ExitInvalidArgs
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "upload":
		return runUpload(cmdArgs)
	case "download":
		return runDownload(cmdArgs)
	case "info":
		return runInfo(cmdArgs)
	case "version", "--version":
		fmt.Println("upstream " + version)
		return ExitSuccess
	case "help", "-h", "--help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		return ExitInvalidArgs
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: upstream <command> [options]

Commands:
  upload    Split a local file into shards and upload them
  download  Download shards by URI and reassemble them into a file
  info      Inspect shard URIs without touching the network
  version   Display version

Run 'upstream <command> -h' for command-specific help.`)
}

// loadConfig builds the effective configuration: defaults, then the optional
// config file, then environment overrides. Flag values are merged by the
// caller on top.
func loadConfig(configPath string) (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// renderError prints err to stderr and maps it to a process exit code.
// Typed transport errors are rendered the way the API contract requires;
// anything unexpected gets a stack trace in verbose mode.
func renderError(err error, verbose bool) int {
	var (
		fileErr  *transport.FileError
		connErr  *transport.ConnectError
		respErr  *transport.ResponseError
		chunkErr *transport.ChunkError
	)

	switch {
	case errors.As(err, &fileErr):
		fmt.Fprintf(os.Stderr, "%v\n", fileErr)
		return ExitFileError
	case errors.As(err, &respErr):
		fmt.Fprintln(os.Stderr, "\nError!")
		fmt.Fprintf(os.Stderr, "%d  %s\n", respErr.Status, respErr.Reason)
		fmt.Fprintf(os.Stderr, "%s\n", respErr.Body)
		return ExitResponseError
	case errors.As(err, &connErr):
		fmt.Fprintf(os.Stderr, "%v\n", connErr)
		return ExitConnectError
	case errors.As(err, &chunkErr):
		fmt.Fprintf(os.Stderr, "%v\n", chunkErr)
		return ExitGeneralError
	default:
		if verbose {
			fmt.Fprint(os.Stderr, goerrors.Wrap(err, 1).ErrorStack())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return ExitGeneralError
	}
}
