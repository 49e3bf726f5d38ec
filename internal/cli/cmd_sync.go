// Package cli implements the sheetboard command-line interface.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/sheetboard/internal/events"
)

// newSyncCmd creates the sync command
func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync the board with the remote sheet",
		Long: `Fetch the full board from the shared sheet, replacing the local view.

With --watch, keep refreshing on the configured interval and print
board activity until interrupted.

Example:
  sheetboard sync
  sheetboard sync --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			watch, _ := cmd.Flags().GetBool("watch")

			s, err := newSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			out := cmd.OutOrStdout()
			if !watch {
				fmt.Fprintf(out, "Synced %d tasks\n", len(s.engine.Snapshot()))
				return nil
			}

			ctx, cancel := SetupSignalHandler()
			defer cancel()

			eventCh := s.publisher.Subscribe(events.GlobalTaskID)
			defer s.publisher.Unsubscribe(events.GlobalTaskID, eventCh)

			s.engine.Start(ctx)
			defer s.engine.Stop()

			fmt.Fprintf(out, "Watching board (refresh every %s), Ctrl-C to stop\n", s.cfg.RefreshInterval)
			for {
				select {
				case <-ctx.Done():
					fmt.Fprintln(out, "Stopped watching")
					return nil
				case ev, ok := <-eventCh:
					if !ok {
						return nil
					}
					printEvent(out, ev)
				}
			}
		},
	}
	cmd.Flags().BoolP("watch", "w", false, "keep syncing until interrupted")
	return cmd
}

// printEvent renders one board event for watch mode. Routine refreshes
// only show up under --verbose; everything else is worth a line.
func printEvent(w io.Writer, ev events.Event) {
	ts := ev.Time.Format("15:04:05")
	switch ev.Type {
	case events.EventRefreshed:
		if verbose {
			if data, ok := ev.Data.(events.RefreshData); ok {
				fmt.Fprintf(w, "%s refreshed %d tasks in %s\n", ts, data.Count, data.Duration)
			} else {
				fmt.Fprintf(w, "%s refreshed\n", ts)
			}
		}
	case events.EventSyncError:
		if data, ok := ev.Data.(events.SyncErrorData); ok {
			fmt.Fprintf(w, "%s sync error (%s): %s\n", ts, data.Op, data.Message)
		} else {
			fmt.Fprintf(w, "%s sync error\n", ts)
		}
	case events.EventRollback:
		if data, ok := ev.Data.(events.RollbackData); ok {
			fmt.Fprintf(w, "%s rolled back %s on %s: %s\n", ts, data.Op, shortID(ev.TaskID), data.Reason)
		} else {
			fmt.Fprintf(w, "%s rolled back a mutation on %s\n", ts, shortID(ev.TaskID))
		}
	default:
		fmt.Fprintf(w, "%s %s %s\n", ts, ev.Type, shortID(ev.TaskID))
	}
}
