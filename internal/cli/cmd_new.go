// Package cli implements the sheetboard command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/sheetboard/internal/task"
)

// newNewCmd creates the new command
func newNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <title>",
		Short: "Create a new task",
		Long: `Create a task at the bottom of the Not Started column.

The task syncs to the shared sheet immediately. An unknown tag is
added to the tag directory first so other clients can render it.

Example:
  sheetboard new "Draft launch brief"
  sheetboard new "Book venue" --due 2026-09-12 --assignee dana@example.com
  sheetboard new "Send invites" --after 4f8a9c2e --tag launch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			draft := task.New(args[0])
			draft.Detail, _ = cmd.Flags().GetString("detail")
			draft.AssigneeEmail, _ = cmd.Flags().GetString("assignee")
			draft.Tag, _ = cmd.Flags().GetString("tag")

			if v, _ := cmd.Flags().GetString("priority"); v != "" {
				draft.Priority = task.Priority(v)
			}
			if v, _ := cmd.Flags().GetString("visibility"); v != "" {
				draft.Visibility = task.Visibility(v)
			}
			if v, _ := cmd.Flags().GetString("start"); v != "" {
				if draft.StartDate, err = parseDateFlag(v); err != nil {
					return err
				}
			}
			if v, _ := cmd.Flags().GetString("due"); v != "" {
				if draft.DueDate, err = parseDateFlag(v); err != nil {
					return err
				}
			}
			if v, _ := cmd.Flags().GetString("after"); v != "" {
				pred, err := resolveTask(s, v)
				if err != nil {
					return err
				}
				draft.PredecessorID = pred.ID
			}

			created, err := s.engine.CreateTask(cmd.Context(), draft)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return printJSON(out, created)
			}
			fmt.Fprintf(out, "Created task %s: %s\n", shortID(created.ID), created.Title)
			return nil
		},
	}
	cmd.Flags().StringP("detail", "d", "", "longer description")
	cmd.Flags().StringP("assignee", "a", "", "assignee email")
	cmd.Flags().StringP("tag", "t", "", "tag name")
	cmd.Flags().StringP("priority", "p", "", "priority (high, medium, low)")
	cmd.Flags().String("visibility", "", "visibility (public, private)")
	cmd.Flags().String("start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().String("due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().String("after", "", "predecessor task id")
	return cmd
}
