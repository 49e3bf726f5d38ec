// Package task provides the task model and dependency rules for sheetboard.
package task

// Priority represents the urgency/importance of a task.
type Priority string

const (
	// PriorityHigh indicates important tasks that should be done soon.
	PriorityHigh Priority = "high"
	// PriorityMedium indicates regular tasks (default).
	PriorityMedium Priority = "medium"
	// PriorityLow indicates tasks that can wait.
	PriorityLow Priority = "low"
)

// ValidPriorities returns all valid priority values.
func ValidPriorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// IsValidPriority returns true if the priority is a valid priority value.
func IsValidPriority(p Priority) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// PriorityOrder returns a numeric value for sorting (lower = higher priority).
func PriorityOrder(p Priority) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

// Visibility controls who may see a task in rendered views.
type Visibility string

const (
	// VisibilityPublic tasks are visible to every workspace member.
	VisibilityPublic Visibility = "public"
	// VisibilityPrivate tasks are visible only to their assignee.
	// The task itself still syncs like any other; visibility is applied
	// when views are rendered, never during persistence.
	VisibilityPrivate Visibility = "private"
)

// ValidVisibilities returns all valid visibility values.
func ValidVisibilities() []Visibility {
	return []Visibility{VisibilityPublic, VisibilityPrivate}
}

// IsValidVisibility returns true if v is a valid visibility value.
func IsValidVisibility(v Visibility) bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate:
		return true
	default:
		return false
	}
}
