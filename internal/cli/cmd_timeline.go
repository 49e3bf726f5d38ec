// Package cli implements the sheetboard command-line interface.
package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/sheetboard/internal/engine"
	"github.com/randalmurphal/sheetboard/internal/task"
)

// newTimelineCmd creates the timeline command
func newTimelineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timeline",
		Short: "Show the scheduling timeline",
		Long: `Show scheduled tasks in dependency order with the visible window.

Tasks appear after their predecessors regardless of dates, so a chain
reads top to bottom.

Example:
  sheetboard timeline`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			view := s.engine.Timeline()

			// Hide other members' private tasks from the rendered rows.
			viewer := s.viewer()
			var rows []*task.Task
			for _, t := range view.Order {
				if t.VisibleTo(viewer) {
					rows = append(rows, t)
				}
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return printJSON(out, engine.TimelineView{Order: rows, From: view.From, To: view.To})
			}

			fmt.Fprintf(out, "Window: %s to %s\n\n", view.From, view.To)
			if len(rows) == 0 {
				fmt.Fprintln(out, "No scheduled tasks.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DATES\tST\tID\tTITLE")
			fmt.Fprintln(w, "─────\t──\t──\t─────")
			for _, t := range rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					dateRange(t), statusIcon(t.Status), shortID(t.ID), truncate(t.Title, 40))
			}
			w.Flush()
			return nil
		},
	}
}
