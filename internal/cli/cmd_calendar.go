// Package cli implements the sheetboard command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newCalendarCmd creates the calendar command group
func newCalendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Manage task calendar events",
		Long: `Link or unlink a task's all-day calendar event.

Linked events span the task's start date through its due date and
follow date shifts automatically. Linking requires the task to be
scheduled.`,
	}
	cmd.AddCommand(newCalendarLinkCmd())
	cmd.AddCommand(newCalendarUnlinkCmd())
	return cmd
}

func newCalendarLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "link <task-id>",
		Short: "Create a calendar event for a task",
		Args:  cobra.ExactArgs(1),
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

			linked, err := s.engine.LinkCalendar(cmd.Context(), t.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return printJSON(out, linked)
			}
			fmt.Fprintf(out, "Linked %s to calendar event %s (%s)\n",
				shortID(linked.ID), linked.CalendarEventID, dateRange(linked))
			return nil
		},
	}
}

func newCalendarUnlinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <task-id>",
		Short: "Remove a task's calendar event",
		Args:  cobra.ExactArgs(1),
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

			unlinked, err := s.engine.UnlinkCalendar(cmd.Context(), t.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return printJSON(out, unlinked)
			}
			fmt.Fprintf(out, "Unlinked %s from calendar\n", shortID(unlinked.ID))
			return nil
		},
	}
}
