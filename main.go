// Command fscan reports large files and folders beneath a directory and
// lists running processes by memory usage.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/fscan/internal/cli"
)

// version is set at build time.
//
//nolint:gochecknoglobals // Build-time variable
var version = "unknown - unofficial & generated by unknown"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fscan: %v\n", err)
		os.Exit(1)
	}
}
