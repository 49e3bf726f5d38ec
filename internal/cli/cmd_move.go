// Package cli implements the sheetboard command-line interface.
package cli

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	boarderrors "github.com/randalmurphal/sheetboard/internal/errors"
	"github.com/randalmurphal/sheetboard/internal/task"
)

// newMoveCmd creates the move command
func newMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <task-id> <status> [index]",
		Short: "Move a task to a column position",
		Long: `Move a task to a board column, optionally at a specific position.

Without an index the task lands at the bottom of the column. Positions
in the destination column are renumbered so they stay dense.

Example:
  sheetboard move 4f8a9c2e in_progress     # bottom of In Progress
  sheetboard move 4f8a9c2e in_progress 0   # top of In Progress
  sheetboard move 4f8a9c2e not_started 2`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := task.Status(args[1])
			if !task.IsValidStatus(status) {
				return boarderrors.ErrInvalidInput(fmt.Sprintf(
					"invalid status %q (valid: not_started, in_progress, completed)", args[1]))
			}

			// Default far past the end; the reconciler clamps into range.
			index := math.MaxInt32
			if len(args) == 3 {
				n, err := strconv.Atoi(args[2])
				if err != nil {
					return boarderrors.ErrInvalidInput(fmt.Sprintf("invalid index %q", args[2]))
				}
				index = n
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

			moved, err := s.engine.MoveTask(cmd.Context(), t.ID, status, index)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return printJSON(out, moved)
			}
			fmt.Fprintf(out, "Moved %s to %s position %d\n",
				shortID(moved.ID), task.StatusLabel(moved.Status), moved.Order)
			return nil
		},
	}
}
