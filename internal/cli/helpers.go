// Package cli implements the sheetboard command-line interface.
// This file contains shared helper functions used across multiple commands.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	boarderrors "github.com/randalmurphal/sheetboard/internal/errors"
	"github.com/randalmurphal/sheetboard/internal/task"
)

// resolveTask finds a task by full ID or unique ID prefix. Board and
// list views print eight-character prefixes, so commands accept them
// back.
func resolveTask(s *session, id string) (*task.Task, error) {
	if t, err := s.engine.Task(id); err == nil {
		return t, nil
	}

	var matches []*task.Task
	for _, t := range s.engine.Snapshot() {
		if strings.HasPrefix(t.ID, id) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, boarderrors.ErrTaskNotFound(id)
	default:
		return nil, boarderrors.ErrInvalidInput(fmt.Sprintf("task id %q is ambiguous (%d matches)", id, len(matches)))
	}
}

// confirm asks a yes/no question and returns true on y/yes.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// parseDateFlag parses a --start/--due value. Empty clears the date.
func parseDateFlag(value string) (task.Date, error) {
	if value == "" {
		return task.Date{}, nil
	}
	d, err := task.ParseDate(value)
	if err != nil {
		return task.Date{}, boarderrors.ErrInvalidInput(fmt.Sprintf("invalid date %q (want YYYY-MM-DD)", value))
	}
	return d, nil
}
