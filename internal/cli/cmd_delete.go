// Package cli implements the sheetboard command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newDeleteCmd creates the delete command
func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Long: `Delete a task from the board and the shared sheet.

The linked calendar event, if any, is removed best-effort. Tasks
naming this one as their predecessor keep the reference; it simply
stops gating them.

Example:
  sheetboard delete 4f8a9c2e
  sheetboard delete 4f8a9c2e --force   # skip confirmation`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")

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
			if !force && !confirm(cmd.InOrStdin(), out, fmt.Sprintf("Delete task %q?", t.Title)) {
				fmt.Fprintln(out, "Aborted")
				return nil
			}

			if err := s.engine.DeleteTask(cmd.Context(), t.ID); err != nil {
				return err
			}

			fmt.Fprintf(out, "Deleted task %s: %s\n", shortID(t.ID), t.Title)
			return nil
		},
	}
	cmd.Flags().BoolP("force", "f", false, "delete without confirmation")
	return cmd
}
