// Package task provides the task model and dependency rules for sheetboard.
package task

import "sort"

// Decision is the outcome of a dependency check on a status change.
type Decision struct {
	// Allowed is true when the change may proceed.
	Allowed bool
	// Reason explains a disallowed change, for display to the user.
	Reason string
	// Blocker is the incomplete predecessor, set only when disallowed.
	Blocker *Task
}

// CanTransition reports whether t may move to the proposed status given
// the current task set. Moving into in_progress or completed requires
// the task's predecessor, when one is set and resolvable, to be
// completed. Moving back to not_started is always allowed. A
// predecessor ID that doesn't resolve within tasks is ignored: a stale
// reference must never freeze the task (fail open).
func CanTransition(t *Task, proposed Status, tasks map[string]*Task) Decision {
	if proposed == StatusNotStarted {
		return Decision{Allowed: true}
	}
	blocker := t.UnmetPredecessor(tasks)
	if blocker == nil {
		return Decision{Allowed: true}
	}
	return Decision{
		Allowed: false,
		Reason:  "predecessor " + blocker.Title + " is not completed",
		Blocker: blocker,
	}
}

// UnmetPredecessor returns the task's predecessor when it is resolvable
// and not yet completed, nil otherwise. Dangling references resolve to
// nil so a deleted predecessor never blocks its dependents.
func (t *Task) UnmetPredecessor(tasks map[string]*Task) *Task {
	if t.PredecessorID == "" {
		return nil
	}
	pred, exists := tasks[t.PredecessorID]
	if !exists {
		return nil
	}
	if IsDone(pred.Status) {
		return nil
	}
	return pred
}

// Blocked returns true if the task has a resolvable, incomplete predecessor.
func (t *Task) Blocked(tasks map[string]*Task) bool {
	return t.UnmetPredecessor(tasks) != nil
}

// Dependents returns the IDs of tasks that name taskID as their
// predecessor, sorted for stable display.
func Dependents(taskID string, tasks []*Task) []string {
	var deps []string
	for _, t := range tasks {
		if t.PredecessorID == taskID {
			deps = append(deps, t.ID)
		}
	}
	sort.Strings(deps)
	return deps
}

// DetectCycle checks whether pointing taskID's predecessor at newPredID
// would create a cycle. Returns the cycle path in order if so, nil
// otherwise. Cycles are legal in stored data (projections tolerate
// them); this exists so edits can warn before creating one.
func DetectCycle(taskID, newPredID string, tasks map[string]*Task) []string {
	// Single-predecessor adjacency: task -> its predecessor.
	pred := make(map[string]string, len(tasks))
	for _, t := range tasks {
		if t.PredecessorID != "" {
			pred[t.ID] = t.PredecessorID
		}
	}
	pred[taskID] = newPredID

	visited := make(map[string]bool)
	path := make(map[string]bool)
	var cyclePath []string

	var walk func(id string) bool
	walk = func(id string) bool {
		if path[id] {
			cyclePath = append(cyclePath, id)
			return true
		}
		if visited[id] {
			return false
		}
		visited[id] = true
		path[id] = true
		if next, ok := pred[id]; ok {
			if walk(next) {
				cyclePath = append(cyclePath, id)
				return true
			}
		}
		path[id] = false
		return false
	}

	if walk(taskID) {
		for i, j := 0, len(cyclePath)-1; i < j; i, j = i+1, j-1 {
			cyclePath[i], cyclePath[j] = cyclePath[j], cyclePath[i]
		}
		return cyclePath
	}
	return nil
}
