// Package task provides the task model and dependency rules for sheetboard.
package task

// Status represents the board column a task sits in.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// ValidStatuses returns all valid status values in board column order.
func ValidStatuses() []Status {
	return []Status{StatusNotStarted, StatusInProgress, StatusCompleted}
}

// IsValidStatus returns true if the status is a valid status value.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsDone returns true if the status means the work is finished.
func IsDone(s Status) bool {
	return s == StatusCompleted
}

// StatusLabel returns a human-readable label for board and list views.
func StatusLabel(s Status) string {
	switch s {
	case StatusNotStarted:
		return "Not Started"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}
