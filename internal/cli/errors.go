// Package cli provides error handling utilities for CLI output.
package cli

import (
	"fmt"
	"os"

	boarderrors "github.com/randalmurphal/sheetboard/internal/errors"
)

// PrintError prints an error to stderr with appropriate formatting.
// If the error is a BoardError, it uses the user-friendly format.
// Otherwise, it prints a simple error message.
func PrintError(err error) {
	if boardErr := boarderrors.AsBoardError(err); boardErr != nil {
		fmt.Fprintln(os.Stderr, boardErr.UserMessage())
		if verbose {
			// In verbose mode, also print the error code and cause
			fmt.Fprintf(os.Stderr, "\nCode: %s\n", boardErr.Code)
			if boardErr.Cause != nil {
				fmt.Fprintf(os.Stderr, "Cause: %v\n", boardErr.Cause)
			}
		}
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

// ExitCode maps an error to the process exit code so scripts can
// distinguish user mistakes from sync failures.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if boardErr := boarderrors.AsBoardError(err); boardErr != nil {
		return boardErr.ExitCode()
	}
	return 1
}
