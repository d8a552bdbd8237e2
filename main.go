// Command treegen generates synthetic directory trees for testing bundlers,
// file watchers and similar tooling against large file counts.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/treegen/internal/cli"
)

// Set by goreleaser at build time.
var version = "unknown - unofficial & generated by unknown"

func main() {
	if err := cli.New(version).Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
