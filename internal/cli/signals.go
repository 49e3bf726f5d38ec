// Package cli implements the sheetboard command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// SetupSignalHandler returns a context that is cancelled on SIGINT/SIGTERM
func SetupSignalHandler() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		fmt.Printf("\n⚠️  Received %s, shutting down gracefully...\n", sig)
		cancel()

		// Second signal forces immediate exit
		sig = <-sigChan
		fmt.Printf("\n🛑 Received %s again, forcing exit\n", sig)
		os.Exit(1)
	}()

	return ctx, cancel
}
