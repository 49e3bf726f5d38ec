// Package main provides the entry point for the sheetboard CLI.
package main

import (
	"os"

	"github.com/randalmurphal/sheetboard/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
