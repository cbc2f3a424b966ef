package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nameone/upstream/pkg/shard"
)

// runInfo parses shard URIs and reports what each one addresses, without
// touching the network. Useful as a dry-run check of a saved URI list.
func runInfo(args []string) int {
	fs := flag.NewFlagSet("info", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: upstream info URI [URI ...]

Parse shard URIs and print the content hash and key components of each.
No network I/O is performed.`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one URI is required")
		fs.Usage()
		return ExitInvalidArgs
	}

	for i, uri := range fs.Args() {
		s, err := shard.ParseURI(uri)
		if err != nil {
			fmt.Fprintf(os.Stderr, "URI %d: %v\n", i+1, err)
			return ExitInvalidArgs
		}
		fmt.Printf("Shard %d - Hash: %s", i+1, s.Hash())
		if s.Key() != "" {
			fmt.Printf("; Key: %s", s.Key())
		}
		fmt.Println()
	}
	fmt.Printf("%d shard(s) parsed.\n", fs.NArg())

	return ExitSuccess
}
