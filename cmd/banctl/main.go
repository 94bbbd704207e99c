// Package main is the entry point for the banctl CLI.
//
// All command logic lives in internal/cli; main only translates the
// terminal error of a run into the process exit code. Exit code 0 means
// the operation succeeded (including an unban against an already-absent
// entry); exit code 1 covers invalid input, unknown users, and store
// failures alike.
package main

import (
	"os"

	"banctl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
