// Package cli implements the sheetboard command-line interface.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/sheetboard/internal/task"
)

// newEditCmd creates the edit command
func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Edit task fields",
		Long: `Edit fields of an existing task. Only flags you pass change.

Passing an empty value clears the field:
  sheetboard edit 4f8a9c2e --tag ""     # remove the tag
  sheetboard edit 4f8a9c2e --after ""   # remove the predecessor

Example:
  sheetboard edit 4f8a9c2e --title "Draft launch brief v2"
  sheetboard edit 4f8a9c2e --status in_progress --assignee dana@example.com`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			current, err := resolveTask(s, args[0])
			if err != nil {
				return err
			}
			updated := current.Clone()

			flags := cmd.Flags()
			if flags.Changed("title") {
				updated.Title, _ = flags.GetString("title")
			}
			if flags.Changed("detail") {
				updated.Detail, _ = flags.GetString("detail")
			}
			if flags.Changed("assignee") {
				updated.AssigneeEmail, _ = flags.GetString("assignee")
			}
			if flags.Changed("tag") {
				updated.Tag, _ = flags.GetString("tag")
			}
			if flags.Changed("priority") {
				v, _ := flags.GetString("priority")
				updated.Priority = task.Priority(v)
			}
			if flags.Changed("visibility") {
				v, _ := flags.GetString("visibility")
				updated.Visibility = task.Visibility(v)
			}
			if flags.Changed("status") {
				v, _ := flags.GetString("status")
				updated.Status = task.Status(v)
			}
			if flags.Changed("start") {
				v, _ := flags.GetString("start")
				if updated.StartDate, err = parseDateFlag(v); err != nil {
					return err
				}
			}
			if flags.Changed("due") {
				v, _ := flags.GetString("due")
				if updated.DueDate, err = parseDateFlag(v); err != nil {
					return err
				}
			}
			if flags.Changed("after") {
				v, _ := flags.GetString("after")
				if v == "" {
					updated.PredecessorID = ""
				} else {
					pred, err := resolveTask(s, v)
					if err != nil {
						return err
					}
					updated.PredecessorID = pred.ID
				}
			}

			// Cycles are legal data the board just cannot gate sensibly.
			// Warn and continue.
			if updated.PredecessorID != "" {
				if cycle := task.DetectCycle(updated.ID, updated.PredecessorID, task.Map(s.engine.Snapshot())); cycle != nil {
					short := make([]string, len(cycle))
					for i, id := range cycle {
						short[i] = shortID(id)
					}
					fmt.Fprintf(cmd.ErrOrStderr(), "⚠️  Warning: predecessor chain loops back to this task (%s)\n",
						strings.Join(short, " -> "))
				}
			}

			result, err := s.engine.UpdateTask(cmd.Context(), updated)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return printJSON(out, result)
			}
			fmt.Fprintf(out, "Updated task %s: %s\n", shortID(result.ID), result.Title)
			return nil
		},
	}
	cmd.Flags().String("title", "", "task title")
	cmd.Flags().StringP("detail", "d", "", "longer description")
	cmd.Flags().StringP("assignee", "a", "", "assignee email")
	cmd.Flags().StringP("tag", "t", "", "tag name")
	cmd.Flags().StringP("priority", "p", "", "priority (high, medium, low)")
	cmd.Flags().String("visibility", "", "visibility (public, private)")
	cmd.Flags().StringP("status", "s", "", "status (not_started, in_progress, completed)")
	cmd.Flags().String("start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().String("due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().String("after", "", "predecessor task id")
	return cmd
}
