package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/randalmurphal/sheetboard/internal/board"
	boarderrors "github.com/randalmurphal/sheetboard/internal/errors"
	"github.com/randalmurphal/sheetboard/internal/events"
	"github.com/randalmurphal/sheetboard/internal/remote"
	"github.com/randalmurphal/sheetboard/internal/task"
	"github.com/randalmurphal/sheetboard/internal/timeline"
)

// Every mutation below follows the same shape: validate and apply the
// change to the local collection first (the mutation closure aborts
// with the collection untouched if validation fails), then issue the
// remote writes in order. A failed write restores the pre-mutation
// snapshot, triggers a refresh and surfaces a taxonomy error. Remote
// writes are never retried here; the next refresh reconciles.

// CreateTask adds a task to the board. The task lands at the end of
// its status column, and a tag the directory has not seen before is
// created alongside.
func (e *Engine) CreateTask(ctx context.Context, draft *task.Task) (*task.Task, error) {
	t := draft.Clone()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = task.StatusNotStarted
	}
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	if errs := t.Validate(); errs.HasErrors() {
		return nil, boarderrors.ErrInvalidInput(errs.Error())
	}

	defer e.locks.lock(t.ID)()

	var created *task.Task
	prev, err := e.store.Apply(func(m map[string]*task.Task) error {
		if _, exists := m[t.ID]; exists {
			return boarderrors.ErrInvalidInput(fmt.Sprintf("task %s already exists", t.ID))
		}
		if t.Status != task.StatusNotStarted {
			if d := task.CanTransition(t, t.Status, m); !d.Allowed {
				return boarderrors.ErrBlockedByPredecessor(t.Title, d.Blocker.Title)
			}
		}
		created = board.Append(values(m), t)
		m[created.ID] = created.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := e.ensureTag(ctx, created.Tag); err != nil {
		e.rollback(ctx, prev, "create task", created.ID, err)
		return nil, mapRemoteErr("create task", "", err)
	}
	if err := e.remote.CreateTask(ctx, created); err != nil {
		e.rollback(ctx, prev, "create task", created.ID, err)
		return nil, mapRemoteErr("create task", "", err)
	}

	e.publisher.Publish(events.NewEvent(events.EventTaskCreated, created.ID, created))
	e.logger.Info("task created", "task", created.ID, "title", created.Title)
	return created, nil
}

// UpdateTask replaces a task's editable fields. A status change is
// gated like any other transition and sends the task to the end of its
// new column. Creation stamps and the calendar link survive the edit.
func (e *Engine) UpdateTask(ctx context.Context, updated *task.Task) (*task.Task, error) {
	if errs := updated.Validate(); errs.HasErrors() {
		return nil, boarderrors.ErrInvalidInput(errs.Error())
	}

	defer e.locks.lock(updated.ID)()

	var next *task.Task
	prev, err := e.store.Apply(func(m map[string]*task.Task) error {
		current := m[updated.ID]
		if current == nil {
			return boarderrors.ErrTaskNotFound(updated.ID)
		}

		next = updated.Clone()
		next.CreatedAt = current.CreatedAt
		next.CalendarEventID = current.CalendarEventID
		next.Order = current.Order
		if next.Status != current.Status {
			// Gate against the edited shape: an edit may change the
			// predecessor and the status in one stroke.
			if d := task.CanTransition(next, next.Status, m); !d.Allowed {
				return boarderrors.ErrBlockedByPredecessor(current.Title, d.Blocker.Title)
			}
			next = board.Append(values(m), next)
		}
		next.Touch()
		m[next.ID] = next.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := e.ensureTag(ctx, next.Tag); err != nil {
		e.rollback(ctx, prev, "update task", next.ID, err)
		return nil, mapRemoteErr("update task", "", err)
	}
	if err := e.remote.UpdateTask(ctx, next); err != nil {
		e.rollback(ctx, prev, "update task", next.ID, err)
		return nil, mapRemoteErr("update task", next.ID, err)
	}

	e.publisher.Publish(events.NewEvent(events.EventTaskUpdated, next.ID, next))
	return next, nil
}

// SetStatus changes a task's status in place without repositioning it.
// Display order keys on (order, created), so the task still slots
// deterministically in its new column; the column is renumbered
// densely on its next explicit move. The remote write touches only the
// status cell.
func (e *Engine) SetStatus(ctx context.Context, id string, status task.Status) (*task.Task, error) {
	if !task.IsValidStatus(status) {
		return nil, boarderrors.ErrInvalidInput(fmt.Sprintf("invalid status %q", status))
	}

	defer e.locks.lock(id)()

	var next *task.Task
	prev, err := e.store.Apply(func(m map[string]*task.Task) error {
		current := m[id]
		if current == nil {
			return boarderrors.ErrTaskNotFound(id)
		}
		if current.Status != status {
			if d := task.CanTransition(current, status, m); !d.Allowed {
				return boarderrors.ErrBlockedByPredecessor(current.Title, d.Blocker.Title)
			}
		}
		current.Status = status
		current.Touch()
		next = current.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := e.remote.UpdateTaskStatus(ctx, id, status); err != nil {
		e.rollback(ctx, prev, "set status", id, err)
		return nil, mapRemoteErr("set status", id, err)
	}

	e.publisher.Publish(events.NewEvent(events.EventTaskUpdated, id, next))
	return next, nil
}

// MoveTask drags a task to a position within a status column. Entering
// a new column is gated by the predecessor rule. The destination
// column is renumbered densely and persisted as one batched write;
// when the column changed, the status cell is written first, and
// either write failing rolls back the whole move.
func (e *Engine) MoveTask(ctx context.Context, id string, dest task.Status, index int) (*task.Task, error) {
	if !task.IsValidStatus(dest) {
		return nil, boarderrors.ErrInvalidInput(fmt.Sprintf("invalid status %q", dest))
	}

	defer e.locks.lock(id)()

	var (
		res  *board.Result
		from task.Status
	)
	prev, err := e.store.Apply(func(m map[string]*task.Task) error {
		current := m[id]
		if current == nil {
			return boarderrors.ErrTaskNotFound(id)
		}
		from = current.Status
		if from != dest {
			if d := task.CanTransition(current, dest, m); !d.Allowed {
				return boarderrors.ErrBlockedByPredecessor(current.Title, d.Blocker.Title)
			}
		}

		r, err := board.Reorder(values(m), id, dest, index)
		if err != nil {
			if errors.Is(err, board.ErrTaskNotFound) {
				return boarderrors.ErrTaskNotFound(id).WithCause(err)
			}
			return err
		}
		r.Moved.Touch()

		for k := range m {
			delete(m, k)
		}
		for _, t := range r.Tasks {
			m[t.ID] = t
		}
		res = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	if from != dest {
		if err := e.remote.UpdateTaskStatus(ctx, id, dest); err != nil {
			e.rollback(ctx, prev, "move task", id, err)
			return nil, mapRemoteErr("move task", id, err)
		}
	}

	updates := make([]remote.OrderUpdate, 0, len(res.Column))
	for _, t := range res.Column {
		updates = append(updates, remote.OrderUpdate{TaskID: t.ID, Order: t.Order})
	}
	if err := e.remote.UpdateTaskOrders(ctx, updates); err != nil {
		e.rollback(ctx, prev, "move task", id, err)
		return nil, mapRemoteErr("move task", id, err)
	}

	e.publisher.Publish(events.NewEvent(events.EventTaskMoved, id, events.MoveData{
		From:  string(from),
		To:    string(dest),
		Index: res.Moved.Order,
	}))
	return res.Moved.Clone(), nil
}

// ShiftDates moves a task's schedule by whole days. The kind selects
// whether the whole bar slides or one edge stretches; a shift that
// would put the start past the due date is rejected with the reason,
// not silently dropped.
func (e *Engine) ShiftDates(ctx context.Context, id string, kind timeline.ShiftKind, days int) (*task.Task, error) {
	if !timeline.IsValidShiftKind(kind) {
		return nil, boarderrors.ErrInvalidInput(fmt.Sprintf("invalid shift kind %q", kind))
	}

	defer e.locks.lock(id)()

	var next *task.Task
	prev, err := e.store.Apply(func(m map[string]*task.Task) error {
		current := m[id]
		if current == nil {
			return boarderrors.ErrTaskNotFound(id)
		}

		shifted, err := timeline.Shift(current, kind, days)
		switch {
		case errors.Is(err, timeline.ErrInvertedRange):
			return boarderrors.ErrInvalidDateRange(current.Title).WithCause(err)
		case errors.Is(err, timeline.ErrUnscheduled):
			return boarderrors.ErrInvalidInput(fmt.Sprintf("task %q has no scheduled dates to shift", current.Title)).WithCause(err)
		case err != nil:
			return err
		}

		shifted.Touch()
		m[id] = shifted.Clone()
		next = shifted
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := e.remote.UpdateTask(ctx, next); err != nil {
		e.rollback(ctx, prev, "shift dates", id, err)
		return nil, mapRemoteErr("shift dates", id, err)
	}

	e.publisher.Publish(events.NewEvent(events.EventDatesShifted, id, events.ShiftData{
		Kind:  string(kind),
		Days:  days,
		Start: next.StartDate.String(),
		Due:   next.DueDate.String(),
	}))
	return next, nil
}

// DeleteTask removes a task. The row delete is the primary write;
// removing a linked calendar event afterwards is best-effort and only
// ever warns.
func (e *Engine) DeleteTask(ctx context.Context, id string) error {
	defer e.locks.lock(id)()

	var deleted *task.Task
	prev, err := e.store.Apply(func(m map[string]*task.Task) error {
		current := m[id]
		if current == nil {
			return boarderrors.ErrTaskNotFound(id)
		}
		deleted = current.Clone()
		delete(m, id)
		return nil
	})
	if err != nil {
		return err
	}

	// The title rides along so the adapter can tell duplicate rows
	// apart before removing one.
	if err := e.remote.DeleteTask(ctx, id, deleted.Title); err != nil {
		e.rollback(ctx, prev, "delete task", id, err)
		return mapRemoteErr("delete task", id, err)
	}

	if deleted.HasCalendarEvent() {
		if err := e.remote.RemoveCalendarEvent(ctx, deleted.CalendarEventID); err != nil {
			e.calendarWarn(deleted.CalendarEventID, id, err)
		}
	}

	e.publisher.Publish(events.NewEvent(events.EventTaskDeleted, id, deleted))
	e.logger.Info("task deleted", "task", id, "title", deleted.Title)
	return nil
}

// LinkCalendar creates an all-day calendar event spanning the task's
// schedule and records the event on the task row. Linking an already
// linked task returns the existing link unchanged.
func (e *Engine) LinkCalendar(ctx context.Context, id string) (*task.Task, error) {
	defer e.locks.lock(id)()

	current, ok := e.store.Get(id)
	if !ok {
		return nil, boarderrors.ErrTaskNotFound(id)
	}
	if current.HasCalendarEvent() {
		return current, nil
	}
	if !current.Scheduled() {
		return nil, boarderrors.ErrInvalidInput(fmt.Sprintf("task %q needs a start and due date before it can go on the calendar", current.Title))
	}

	eventID, err := e.remote.AddCalendarEvent(ctx, current)
	if err != nil {
		return nil, mapRemoteErr("link calendar", "", err)
	}

	var next *task.Task
	prev, err := e.store.Apply(func(m map[string]*task.Task) error {
		t := m[id]
		if t == nil {
			return boarderrors.ErrTaskNotFound(id)
		}
		t.CalendarEventID = eventID
		t.Touch()
		next = t.Clone()
		return nil
	})
	if err != nil {
		// The task is gone locally; don't leave the event orphaned.
		if rmErr := e.remote.RemoveCalendarEvent(ctx, eventID); rmErr != nil {
			e.calendarWarn(eventID, id, rmErr)
		}
		return nil, err
	}

	if err := e.remote.UpdateTask(ctx, next); err != nil {
		e.rollback(ctx, prev, "link calendar", id, err)
		if rmErr := e.remote.RemoveCalendarEvent(ctx, eventID); rmErr != nil {
			e.calendarWarn(eventID, id, rmErr)
		}
		return nil, mapRemoteErr("link calendar", id, err)
	}

	e.publisher.Publish(events.NewEvent(events.EventTaskUpdated, id, next))
	e.logger.Info("calendar event linked", "task", id, "event", eventID)
	return next, nil
}

// UnlinkCalendar clears a task's calendar link, then removes the event
// itself best-effort. A failed removal leaves an orphaned event on the
// calendar and a warning, never a failed unlink.
func (e *Engine) UnlinkCalendar(ctx context.Context, id string) (*task.Task, error) {
	defer e.locks.lock(id)()

	var (
		next    *task.Task
		eventID string
	)
	prev, err := e.store.Apply(func(m map[string]*task.Task) error {
		current := m[id]
		if current == nil {
			return boarderrors.ErrTaskNotFound(id)
		}
		if !current.HasCalendarEvent() {
			return boarderrors.ErrInvalidInput(fmt.Sprintf("task %q has no calendar event", current.Title))
		}
		eventID = current.CalendarEventID
		current.CalendarEventID = ""
		current.Touch()
		next = current.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := e.remote.UpdateTask(ctx, next); err != nil {
		e.rollback(ctx, prev, "unlink calendar", id, err)
		return nil, mapRemoteErr("unlink calendar", id, err)
	}

	if err := e.remote.RemoveCalendarEvent(ctx, eventID); err != nil {
		e.calendarWarn(eventID, id, err)
	}

	e.publisher.Publish(events.NewEvent(events.EventTaskUpdated, id, next))
	return next, nil
}
