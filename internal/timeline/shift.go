package timeline

import (
	"errors"
	"fmt"
	"math"

	"github.com/randalmurphal/sheetboard/internal/task"
)

// ShiftKind selects which date edges a shift moves.
type ShiftKind string

const (
	// ShiftMove slides the whole bar: both dates move together.
	ShiftMove ShiftKind = "move"
	// ShiftStart moves only the start date (resizing the left edge).
	ShiftStart ShiftKind = "start"
	// ShiftDue moves only the due date (resizing the right edge).
	ShiftDue ShiftKind = "due"
)

// ValidShiftKinds returns all valid shift kinds.
func ValidShiftKinds() []ShiftKind {
	return []ShiftKind{ShiftMove, ShiftStart, ShiftDue}
}

// IsValidShiftKind returns true if k is a valid shift kind.
func IsValidShiftKind(k ShiftKind) bool {
	switch k {
	case ShiftMove, ShiftStart, ShiftDue:
		return true
	default:
		return false
	}
}

// ErrInvertedRange is returned when a shift would leave the start date
// after the due date. The task is not changed.
var ErrInvertedRange = errors.New("start date would pass due date")

// ErrUnscheduled is returned when a shift targets a task without both
// dates set. Such tasks have no timeline bar to move.
var ErrUnscheduled = errors.New("task has no scheduled dates")

// DaysForOffset converts a horizontal drag offset in pixels into a
// whole-day delta at the view's fixed day width. Rounding to the
// nearest day makes the bar snap once the pointer crosses half a day.
func DaysForOffset(px float64, pxPerDay int) int {
	if pxPerDay <= 0 {
		return 0
	}
	return int(math.Round(px / float64(pxPerDay)))
}

// Shift returns a copy of the task with its dates moved by the given
// whole-day delta. A shift that would invert the range is rejected
// with ErrInvertedRange so callers can tell the user why the bar
// snapped back instead of silently dropping the change.
func Shift(t *task.Task, kind ShiftKind, days int) (*task.Task, error) {
	if !t.Scheduled() {
		return nil, fmt.Errorf("shift task %s: %w", t.ID, ErrUnscheduled)
	}

	c := t.Clone()
	switch kind {
	case ShiftMove:
		c.StartDate = c.StartDate.AddDays(days)
		c.DueDate = c.DueDate.AddDays(days)
	case ShiftStart:
		c.StartDate = c.StartDate.AddDays(days)
	case ShiftDue:
		c.DueDate = c.DueDate.AddDays(days)
	default:
		return nil, fmt.Errorf("shift task %s: unknown shift kind %q", t.ID, kind)
	}

	if c.DueDate.Before(c.StartDate) {
		return nil, fmt.Errorf("shift task %s: %w", t.ID, ErrInvertedRange)
	}
	return c, nil
}
