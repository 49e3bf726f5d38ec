// Package timeline projects tasks into a schedule view: a dependency-
// aware render order, a date window, and date-shift arithmetic for
// drag interactions.
//
// Only tasks with both dates set appear on the timeline. The projection
// never fails: malformed dependency graphs (cycles, self-references,
// dangling predecessors) degrade to a flat ordering rather than an
// error, because the view must render whatever state concurrent
// clients have produced.
package timeline

import (
	"sort"

	"github.com/randalmurphal/sheetboard/internal/task"
)

const (
	// windowLeadDays pads the window before the earliest start date.
	windowLeadDays = 7
	// windowTrailDays pads the window after the latest due date.
	windowTrailDays = 14
)

// RenderOrder returns scheduled tasks in row order for the timeline:
// dependency roots first (earliest start date first), each followed by
// its dependents depth-first, dependents ordered by start date. Tasks
// whose ancestry loops (cycle members and everything behind them) are
// appended at the end in the order they appear in the input. Every
// eligible task appears exactly once for any graph shape.
func RenderOrder(tasks []*task.Task) []*task.Task {
	var eligible []*task.Task
	for _, t := range tasks {
		if t.Scheduled() {
			eligible = append(eligible, t.Clone())
		}
	}
	byID := task.Map(eligible)

	// Dependency edges where both endpoints render. A predecessor that
	// is deleted or unscheduled contributes no edge, so its dependents
	// surface as roots instead of disappearing.
	dependents := make(map[string][]*task.Task)
	var roots []*task.Task
	for _, t := range eligible {
		if t.PredecessorID != "" && t.PredecessorID != t.ID {
			if _, ok := byID[t.PredecessorID]; ok {
				dependents[t.PredecessorID] = append(dependents[t.PredecessorID], t)
				continue
			}
		}
		roots = append(roots, t)
	}
	for _, deps := range dependents {
		sortByStart(deps)
	}
	sortByStart(roots)

	visited := make(map[string]bool, len(eligible))
	out := make([]*task.Task, 0, len(eligible))
	var visit func(t *task.Task)
	visit = func(t *task.Task) {
		if visited[t.ID] {
			return
		}
		visited[t.ID] = true
		out = append(out, t)
		for _, d := range dependents[t.ID] {
			visit(d)
		}
	}
	for _, r := range roots {
		visit(r)
	}

	// Whatever the traversal could not reach sits behind a cycle.
	for _, t := range eligible {
		if !visited[t.ID] {
			visited[t.ID] = true
			out = append(out, t)
		}
	}
	return out
}

// Window returns the date range the timeline draws: a week of lead
// before the earliest start date through two weeks past the latest due
// date. With nothing scheduled it collapses to a single day at today.
func Window(tasks []*task.Task, today task.Date) (from, to task.Date) {
	var minStart, maxDue task.Date
	found := false
	for _, t := range tasks {
		if !t.Scheduled() {
			continue
		}
		if !found {
			minStart, maxDue = t.StartDate, t.DueDate
			found = true
			continue
		}
		minStart = task.MinDate(minStart, t.StartDate)
		maxDue = task.MaxDate(maxDue, t.DueDate)
	}
	if !found {
		return today, today
	}
	return minStart.AddDays(-windowLeadDays), maxDue.AddDays(windowTrailDays)
}

func sortByStart(tasks []*task.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].StartDate.Before(tasks[j].StartDate)
	})
}
