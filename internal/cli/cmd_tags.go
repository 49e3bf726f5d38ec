// Package cli implements the sheetboard command-line interface.
package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// newTagsCmd creates the tags command
func newTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List known tags",
		Long: `List the tag directory from the shared sheet.

Creating a task with an unknown tag adds it here automatically.

Example:
  sheetboard tags`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			tags, err := s.engine.Tags(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return printJSON(out, tags)
			}

			if len(tags) == 0 {
				fmt.Fprintln(out, "No tags yet. Create one with: sheetboard new \"Task\" --tag name")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCOLOR")
			fmt.Fprintln(w, "────\t─────")
			for _, tg := range tags {
				color := tg.Color
				if color == "" {
					color = "-"
				}
				fmt.Fprintf(w, "%s\t%s\n", tg.Name, color)
			}
			w.Flush()
			return nil
		},
	}
}
