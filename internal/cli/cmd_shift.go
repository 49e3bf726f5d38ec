// Package cli implements the sheetboard command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	boarderrors "github.com/randalmurphal/sheetboard/internal/errors"
	"github.com/randalmurphal/sheetboard/internal/timeline"
)

// newShiftCmd creates the shift command
func newShiftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shift <task-id>",
		Short: "Shift a task's scheduled dates",
		Long: `Shift a task's dates by whole days. Negative values move earlier.

Modes:
  move   both dates slide together (default)
  start  only the start date moves
  due    only the due date moves

A shift that would put the start date after the due date is rejected
and the task keeps its dates.

Example:
  sheetboard shift 4f8a9c2e --by 3
  sheetboard shift 4f8a9c2e --by -2 --mode due`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("by")
			mode, _ := cmd.Flags().GetString("mode")

			kind := timeline.ShiftKind(mode)
			if !timeline.IsValidShiftKind(kind) {
				return boarderrors.ErrInvalidInput(fmt.Sprintf(
					"invalid mode %q (valid: move, start, due)", mode))
			}
			if days == 0 {
				return boarderrors.ErrInvalidInput("--by must be a non-zero day count")
			}

			s, err := newSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			t, err := resolveTask(s, args[0])
			if err != nil {
				return err
			}

			shifted, err := s.engine.ShiftDates(cmd.Context(), t.ID, kind, days)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return printJSON(out, shifted)
			}
			fmt.Fprintf(out, "Shifted %s: %s\n", shortID(shifted.ID), dateRange(shifted))
			return nil
		},
	}
	cmd.Flags().IntP("by", "n", 0, "days to shift (negative moves earlier)")
	cmd.Flags().StringP("mode", "m", "move", "which dates move (move, start, due)")
	_ = cmd.MarkFlagRequired("by")
	return cmd
}
