// Package cli implements the sheetboard command-line interface.
package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// newUsersCmd creates the users command
func newUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List workspace members",
		Long: `List the workspace member directory from the shared sheet.

Tasks reference members by email; this shows who those emails are.

Example:
  sheetboard users`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			users, err := s.engine.Users(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return printJSON(out, users)
			}

			if len(users) == 0 {
				fmt.Fprintln(out, "No members in the directory.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "EMAIL\tNAME\tROLE\tDEPARTMENT")
			fmt.Fprintln(w, "─────\t────\t────\t──────────")
			for _, u := range users {
				dept := u.Department
				if dept == "" {
					dept = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.Email, u.Name, u.GetRole(), dept)
			}
			w.Flush()
			return nil
		},
	}
}
