// Package task provides the task model and dependency rules for sheetboard.
package task

import (
	"fmt"
	"strings"
)

// ValidationError represents a single validation error.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %s (got %q)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error returns a combined error message.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// ToError returns an error if there are validation errors, nil otherwise.
func (e ValidationErrors) ToError() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Validate checks all field constraints on a task and returns validation errors.
func (t *Task) Validate() ValidationErrors {
	var errs ValidationErrors

	if t.ID == "" {
		errs = append(errs, ValidationError{
			Field:   "id",
			Message: "required",
		})
	}

	if strings.TrimSpace(t.Title) == "" {
		errs = append(errs, ValidationError{
			Field:   "title",
			Message: "required",
		})
	}

	if !IsValidStatus(t.Status) {
		errs = append(errs, ValidationError{
			Field:   "status",
			Value:   string(t.Status),
			Message: "invalid status",
		})
	}

	if t.Priority != "" && !IsValidPriority(t.Priority) {
		errs = append(errs, ValidationError{
			Field:   "priority",
			Value:   string(t.Priority),
			Message: "invalid priority",
		})
	}

	if t.Visibility != "" && !IsValidVisibility(t.Visibility) {
		errs = append(errs, ValidationError{
			Field:   "visibility",
			Value:   string(t.Visibility),
			Message: "invalid visibility",
		})
	}

	if t.PredecessorID != "" && t.PredecessorID == t.ID {
		errs = append(errs, ValidationError{
			Field:   "predecessor_id",
			Message: "task cannot be its own predecessor",
		})
	}

	if !t.StartDate.IsZero() && !t.DueDate.IsZero() && t.DueDate.Before(t.StartDate) {
		errs = append(errs, ValidationError{
			Field:   "due_date",
			Value:   t.DueDate.String(),
			Message: "due date is before start date",
		})
	}

	return errs
}
