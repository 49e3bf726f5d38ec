// Package cli implements the sheetboard command-line interface.
package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/sheetboard/internal/board"
	"github.com/randalmurphal/sheetboard/internal/task"
)

// newBoardCmd creates the board command
func newBoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "board",
		Aliases: []string{"b"},
		Short:   "Show the task board",
		Long: `Show the three board columns with tasks in display order.

Private tasks belonging to other members are hidden. Set viewer_email
in the config so the board knows who you are.

Example:
  sheetboard board`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			columns := board.Columns(s.engine.VisibleTasks(s.viewer()))

			out := cmd.OutOrStdout()
			if jsonOut {
				return printJSON(out, columns)
			}

			for _, status := range task.ValidStatuses() {
				col := columns[status]
				fmt.Fprintf(out, "%s %s (%d)\n", statusIcon(status), task.StatusLabel(status), len(col))
				if len(col) == 0 {
					fmt.Fprintln(out)
					continue
				}
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				for _, t := range col {
					fmt.Fprintf(w, "  %d.\t%s\t%s\t%s\n",
						t.Order, shortID(t.ID), truncate(t.Title, 40), dateRange(t))
				}
				w.Flush()
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}
