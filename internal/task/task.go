// Package task provides the task model and dependency rules for sheetboard.
package task

import (
	"time"

	"github.com/google/uuid"
)

// Task represents a unit of work on the shared board.
type Task struct {
	// ID is the unique identifier, generated client-side at creation
	// and never changed afterwards.
	ID string `yaml:"id" json:"id"`

	// Title is a short description of the task.
	Title string `yaml:"title" json:"title"`

	// Detail is the free-form long description.
	Detail string `yaml:"detail,omitempty" json:"detail,omitempty"`

	// AssigneeEmail references a workspace member by email.
	AssigneeEmail string `yaml:"assignee_email,omitempty" json:"assignee_email,omitempty"`

	// Tag is a single optional categorization label.
	Tag string `yaml:"tag,omitempty" json:"tag,omitempty"`

	// StartDate is the planned start (day granularity). Zero when unset.
	StartDate Date `yaml:"start_date,omitempty" json:"start_date,omitempty"`

	// DueDate is the planned end (day granularity). Zero when unset.
	// When both dates are set, StartDate <= DueDate holds.
	DueDate Date `yaml:"due_date,omitempty" json:"due_date,omitempty"`

	// Priority indicates the urgency/importance of the task.
	Priority Priority `yaml:"priority,omitempty" json:"priority,omitempty"`

	// Status is the board column the task sits in.
	Status Status `yaml:"status" json:"status"`

	// CalendarEventID links the task to a calendar event, when one exists.
	CalendarEventID string `yaml:"calendar_event_id,omitempty" json:"calendar_event_id,omitempty"`

	// Visibility controls who may see the task in rendered views.
	Visibility Visibility `yaml:"visibility,omitempty" json:"visibility,omitempty"`

	// PredecessorID references the single task that must complete before
	// this one may start. Empty means no predecessor.
	PredecessorID string `yaml:"predecessor_id,omitempty" json:"predecessor_id,omitempty"`

	// Order is the task's position within its status column. The
	// reconciler keeps orders dense (0..n-1) per column after every move.
	Order int `yaml:"order" json:"order"`

	// CreatedAt is when the task was created.
	CreatedAt time.Time `yaml:"created_at" json:"created_at"`

	// UpdatedAt is when the task was last modified.
	UpdatedAt time.Time `yaml:"updated_at" json:"updated_at"`
}

// New creates a task with the given title, a fresh ID and field defaults.
func New(title string) *Task {
	now := time.Now()
	return &Task{
		ID:         uuid.NewString(),
		Title:      title,
		Status:     StatusNotStarted,
		Priority:   PriorityMedium,
		Visibility: VisibilityPublic,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Touch stamps UpdatedAt. Called on every successful mutation.
func (t *Task) Touch() {
	t.UpdatedAt = time.Now()
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	return &c
}

// GetPriority returns the task's priority, defaulting to medium if not set.
func (t *Task) GetPriority() Priority {
	if t.Priority == "" {
		return PriorityMedium
	}
	return t.Priority
}

// GetVisibility returns the task's visibility, defaulting to public if not set.
func (t *Task) GetVisibility() Visibility {
	if t.Visibility == "" {
		return VisibilityPublic
	}
	return t.Visibility
}

// IsDone returns true if the task's work is finished.
func (t *Task) IsDone() bool {
	return IsDone(t.Status)
}

// Scheduled returns true when both dates are set. Only scheduled tasks
// appear on the timeline.
func (t *Task) Scheduled() bool {
	return !t.StartDate.IsZero() && !t.DueDate.IsZero()
}

// HasCalendarEvent returns true if the task is linked to a calendar event.
func (t *Task) HasCalendarEvent() bool {
	return t.CalendarEventID != ""
}

// VisibleTo reports whether the given viewer may see this task in
// rendered views. Private tasks are visible only to their assignee.
func (t *Task) VisibleTo(viewerEmail string) bool {
	if t.GetVisibility() == VisibilityPublic {
		return true
	}
	return t.AssigneeEmail != "" && t.AssigneeEmail == viewerEmail
}

// Clip bounds a destination index into [0, n] so out-of-range drop
// positions land at the nearest end of the column.
func Clip(index, n int) int {
	if index < 0 {
		return 0
	}
	if index > n {
		return n
	}
	return index
}

// Map builds an ID-keyed map over the given tasks.
func Map(tasks []*Task) map[string]*Task {
	m := make(map[string]*Task, len(tasks))
	for _, t := range tasks {
		m[t.ID] = t
	}
	return m
}

// CloneAll returns deep copies of all given tasks.
func CloneAll(tasks []*Task) []*Task {
	out := make([]*Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
