package board

import (
	"fmt"

	"github.com/randalmurphal/sheetboard/internal/task"
)

// Result is the outcome of a reorder.
type Result struct {
	// Tasks is the full collection after the move.
	Tasks []*task.Task
	// Column is the destination column after renumbering, in display
	// order. Persisting these orders is what makes the move durable.
	Column []*task.Task
	// Moved is the moved task with its new status and order.
	Moved *task.Task
}

// Reorder moves the task with the given ID into the dest column at the
// requested index and renumbers that column densely from zero.
//
// The index is the visual drop position; out-of-range values clamp to
// the nearest end. Only the destination column is renumbered: a gap
// left in the source column is harmless because display order sorts by
// Order then CreatedAt, and the gap closes the next time that column
// is reordered. Inputs are copied, never mutated.
//
// Reorder is pure bookkeeping. Callers gate status changes (dependency
// rules) before invoking it.
func Reorder(tasks []*task.Task, id string, dest task.Status, index int) (*Result, error) {
	if !task.IsValidStatus(dest) {
		return nil, fmt.Errorf("reorder task %s: invalid status %q", id, dest)
	}

	all := task.CloneAll(tasks)
	moved := task.Map(all)[id]
	if moved == nil {
		return nil, fmt.Errorf("reorder task %s: %w", id, ErrTaskNotFound)
	}

	// Destination column in current display order, without the moved task.
	var column []*task.Task
	for _, t := range all {
		if t.ID != id && t.Status == dest {
			column = append(column, t)
		}
	}
	SortColumn(column)

	idx := task.Clip(index, len(column))
	moved.Status = dest

	column = append(column, nil)
	copy(column[idx+1:], column[idx:])
	column[idx] = moved

	for i, t := range column {
		t.Order = i
	}

	return &Result{Tasks: all, Column: column, Moved: moved}, nil
}

// Append places a task at the end of its column, used when creating a
// task: the new task lands after everything already there.
func Append(tasks []*task.Task, t *task.Task) *task.Task {
	next := 0
	for _, other := range tasks {
		if other.ID != t.ID && other.Status == t.Status && other.Order >= next {
			next = other.Order + 1
		}
	}
	c := t.Clone()
	c.Order = next
	return c
}
