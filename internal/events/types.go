// Package events provides event types and publishing infrastructure
// for sheetboard. The sync engine publishes here so views and watchers
// learn about mutations, refreshes and rollbacks without polling the
// store themselves.
package events

import (
	"time"
)

// EventType defines the type of event.
type EventType string

const (
	// Mutation events (one task each)

	// EventTaskCreated indicates a task was created and synced.
	EventTaskCreated EventType = "task_created"
	// EventTaskUpdated indicates a task's fields changed and synced.
	EventTaskUpdated EventType = "task_updated"
	// EventTaskDeleted indicates a task was deleted remotely.
	EventTaskDeleted EventType = "task_deleted"
	// EventTaskMoved indicates a task changed column or position.
	EventTaskMoved EventType = "task_moved"
	// EventDatesShifted indicates a task's scheduled dates moved.
	EventDatesShifted EventType = "dates_shifted"

	// Sync events (board-wide, published under GlobalTaskID)

	// EventRefreshed indicates the store was replaced by a fetch.
	EventRefreshed EventType = "tasks_refreshed"
	// EventRollback indicates an optimistic mutation was rolled back
	// after a failed remote write.
	EventRollback EventType = "mutation_rolled_back"
	// EventSyncError indicates a refresh or write failed.
	EventSyncError EventType = "sync_error"
	// EventCalendarWarning indicates a secondary calendar operation
	// failed without affecting the task mutation itself.
	EventCalendarWarning EventType = "calendar_warning"
)

// Event represents a published event.
type Event struct {
	Type   EventType `json:"type"`
	TaskID string    `json:"task_id"`
	Data   any       `json:"data"`
	Time   time.Time `json:"time"`
}

// NewEvent creates a new event with the current timestamp.
func NewEvent(eventType EventType, taskID string, data any) Event {
	return Event{
		Type:   eventType,
		TaskID: taskID,
		Data:   data,
		Time:   time.Now(),
	}
}

// MoveData describes a column move.
type MoveData struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Index int    `json:"index"`
}

// ShiftData describes a date shift.
type ShiftData struct {
	Kind  string `json:"kind"` // move, start, due
	Days  int    `json:"days"`
	Start string `json:"start"`
	Due   string `json:"due"`
}

// RefreshData describes a completed refresh.
type RefreshData struct {
	Count    int    `json:"count"`
	Duration string `json:"duration,omitempty"`
}

// RollbackData describes a rolled-back mutation.
type RollbackData struct {
	Op     string `json:"op"`
	Reason string `json:"reason"`
}

// SyncErrorData describes a failed sync operation.
type SyncErrorData struct {
	Op      string `json:"op"`
	Message string `json:"message"`
}

// CalendarWarningData describes a failed calendar side effect.
type CalendarWarningData struct {
	EventID string `json:"event_id,omitempty"`
	Message string `json:"message"`
}
