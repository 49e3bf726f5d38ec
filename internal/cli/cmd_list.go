// Package cli implements the sheetboard command-line interface.
package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	boarderrors "github.com/randalmurphal/sheetboard/internal/errors"
	"github.com/randalmurphal/sheetboard/internal/task"
)

// newListCmd creates the list command
func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `List visible tasks, newest first.

Example:
  sheetboard list
  sheetboard list --status in_progress
  sheetboard list --assignee dana@example.com
  sheetboard list --tag launch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			statusFilter, _ := cmd.Flags().GetString("status")
			tagFilter, _ := cmd.Flags().GetString("tag")
			assigneeFilter, _ := cmd.Flags().GetString("assignee")

			if statusFilter != "" && !task.IsValidStatus(task.Status(statusFilter)) {
				return boarderrors.ErrInvalidInput(fmt.Sprintf(
					"invalid status %q (valid: not_started, in_progress, completed)", statusFilter))
			}

			s, err := newSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			var tasks []*task.Task
			for _, t := range s.engine.VisibleTasks(s.viewer()) {
				if statusFilter != "" && t.Status != task.Status(statusFilter) {
					continue
				}
				if tagFilter != "" && !strings.EqualFold(t.Tag, tagFilter) {
					continue
				}
				if assigneeFilter != "" && t.AssigneeEmail != assigneeFilter {
					continue
				}
				tasks = append(tasks, t)
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return printJSON(out, tasks)
			}

			if len(tasks) == 0 {
				fmt.Fprintln(out, "No tasks found. Create one with: sheetboard new \"Your task\"")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tST\tPRIORITY\tASSIGNEE\tDUE\tTITLE")
			fmt.Fprintln(w, "──\t──\t────────\t────────\t───\t─────")
			for _, t := range tasks {
				assignee := t.AssigneeEmail
				if assignee == "" {
					assignee = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					shortID(t.ID), statusIcon(t.Status), t.GetPriority(), assignee,
					formatDate(t.DueDate), truncate(t.Title, 40))
			}
			w.Flush()
			return nil
		},
	}
	cmd.Flags().StringP("status", "s", "", "filter by status (not_started, in_progress, completed)")
	cmd.Flags().StringP("tag", "t", "", "filter by tag name")
	cmd.Flags().StringP("assignee", "a", "", "filter by assignee email")
	return cmd
}
