// Package board derives column views and reconciles column ordering.
//
// Tasks carry a per-column Order value that concurrent clients can
// leave sparse, duplicated or stale. Everything here treats the stored
// orders as hints: views sort deterministically, and every move passes
// through Reorder, which renumbers the destination column densely so
// local state is always coherent regardless of what the remote holds.
package board

import (
	"errors"
	"sort"

	"github.com/randalmurphal/sheetboard/internal/task"
)

// ErrTaskNotFound is returned when an operation names an unknown task.
var ErrTaskNotFound = errors.New("task not found")

// SortColumn sorts tasks in place into display order: Order ascending,
// ties broken by CreatedAt descending so newer tasks surface first.
func SortColumn(tasks []*task.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Order != tasks[j].Order {
			return tasks[i].Order < tasks[j].Order
		}
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
}

// Column returns copies of the tasks in the given status column, in
// display order.
func Column(tasks []*task.Task, status task.Status) []*task.Task {
	var col []*task.Task
	for _, t := range tasks {
		if t.Status == status {
			col = append(col, t.Clone())
		}
	}
	SortColumn(col)
	return col
}

// Columns returns all three status columns in board order, each in
// display order.
func Columns(tasks []*task.Task) map[task.Status][]*task.Task {
	cols := make(map[task.Status][]*task.Task, len(task.ValidStatuses()))
	for _, s := range task.ValidStatuses() {
		cols[s] = Column(tasks, s)
	}
	return cols
}
