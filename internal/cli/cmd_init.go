// Package cli implements the sheetboard command-line interface.
package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/sheetboard/internal/config"
)

// newInitCmd creates the init command
func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize sheetboard in the current directory",
		Long: `Write a starter .sheetboard/config.yaml into the current directory.

Edit the generated file to point at your team's spreadsheet, then run
"sheetboard sync" to pull the board.

Example:
  sheetboard init
  sheetboard init --force   # overwrite an existing config`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")

			if err := config.Init(force); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Initialized sheetboard in %s\n", filepath.Join(config.SheetboardDir, config.ConfigFileName))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Next steps:")
			fmt.Fprintln(out, "  1. Set remote.base_url and remote.sheet_id in the config")
			fmt.Fprintln(out, "  2. Put an API token in auth.token (or auth.token_file)")
			fmt.Fprintln(out, "  3. Run: sheetboard sync")
			return nil
		},
	}
	cmd.Flags().BoolP("force", "f", false, "overwrite existing config")
	return cmd
}
