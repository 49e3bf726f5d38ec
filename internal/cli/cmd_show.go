// Package cli implements the sheetboard command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/sheetboard/internal/task"
)

// newShowCmd creates the show command
func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show task details",
		Long: `Show every field of one task, including its predecessor and
whether it is currently blocked.

Example:
  sheetboard show 4f8a9c2e`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			t, err := resolveTask(s, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return printJSON(out, t)
			}

			tasks := task.Map(s.engine.Snapshot())

			fmt.Fprintf(out, "%s %s\n\n", statusIcon(t.Status), t.Title)
			fmt.Fprintf(out, "ID:         %s\n", t.ID)
			fmt.Fprintf(out, "Status:     %s\n", task.StatusLabel(t.Status))
			fmt.Fprintf(out, "Priority:   %s\n", t.GetPriority())
			fmt.Fprintf(out, "Visibility: %s\n", t.GetVisibility())
			if t.AssigneeEmail != "" {
				fmt.Fprintf(out, "Assignee:   %s\n", t.AssigneeEmail)
			}
			if t.Tag != "" {
				fmt.Fprintf(out, "Tag:        %s\n", t.Tag)
			}
			if !t.StartDate.IsZero() || !t.DueDate.IsZero() {
				fmt.Fprintf(out, "Dates:      %s\n", dateRange(t))
			}
			if t.PredecessorID != "" {
				label := t.PredecessorID
				if pred, ok := tasks[t.PredecessorID]; ok {
					label = fmt.Sprintf("%s (%s)", pred.Title, shortID(pred.ID))
				}
				fmt.Fprintf(out, "After:      %s\n", label)
				if t.Blocked(tasks) {
					fmt.Fprintln(out, "Blocked:    yes, predecessor incomplete")
				}
			}
			if t.HasCalendarEvent() {
				fmt.Fprintf(out, "Calendar:   %s\n", t.CalendarEventID)
			}
			if t.Detail != "" {
				fmt.Fprintf(out, "\n%s\n", t.Detail)
			}
			fmt.Fprintf(out, "\nCreated %s, updated %s\n",
				t.CreatedAt.Format("2006-01-02 15:04"),
				t.UpdatedAt.Format("2006-01-02 15:04"))
			return nil
		},
	}
}
