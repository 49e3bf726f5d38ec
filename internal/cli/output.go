// Package cli implements the sheetboard command-line interface.
// This file contains shared rendering helpers used across commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/randalmurphal/sheetboard/internal/task"
)

// useGlyphs reports whether unicode glyphs should be rendered. Piped
// output and --plain degrade to ASCII.
func useGlyphs() bool {
	if plainOut {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

func statusIcon(status task.Status) string {
	if !useGlyphs() {
		return statusShort(status)
	}
	switch status {
	case task.StatusNotStarted:
		return "○"
	case task.StatusInProgress:
		return "◐"
	case task.StatusCompleted:
		return "●"
	default:
		return "?"
	}
}

// statusShort is the ASCII fallback for piped output.
func statusShort(status task.Status) string {
	switch status {
	case task.StatusNotStarted:
		return "todo"
	case task.StatusInProgress:
		return "doing"
	case task.StatusCompleted:
		return "done"
	default:
		return string(status)
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// shortID renders the first eight characters of a task ID. Full UUIDs
// make tables unreadable; commands accept the prefix back.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func formatDate(d task.Date) string {
	if d.IsZero() {
		return "-"
	}
	return d.String()
}

// dateRange renders a task's scheduled dates in one cell.
func dateRange(t *task.Task) string {
	sep := ".."
	if useGlyphs() {
		sep = "→"
	}
	switch {
	case !t.StartDate.IsZero() && !t.DueDate.IsZero():
		return fmt.Sprintf("%s %s %s", t.StartDate, sep, t.DueDate)
	case !t.DueDate.IsZero():
		return fmt.Sprintf("due %s", t.DueDate)
	case !t.StartDate.IsZero():
		return fmt.Sprintf("from %s", t.StartDate)
	default:
		return "-"
	}
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
