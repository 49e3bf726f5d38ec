package engine

import (
	"context"
	"errors"
	"strings"
	"sync"

	boarderrors "github.com/randalmurphal/sheetboard/internal/errors"
	"github.com/randalmurphal/sheetboard/internal/events"
	"github.com/randalmurphal/sheetboard/internal/remote"
	"github.com/randalmurphal/sheetboard/internal/task"
)

// keyedLocks hands out one mutex per key. Mutations on the same task
// serialize; unrelated tasks proceed in parallel. Locks are never
// reclaimed, which is fine at board scale.
type keyedLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func (k *keyedLocks) lock(key string) (unlock func()) {
	k.mu.Lock()
	if k.m == nil {
		k.m = make(map[string]*sync.Mutex)
	}
	l, ok := k.m[key]
	if !ok {
		l = &sync.Mutex{}
		k.m[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// rollback restores the pre-mutation snapshot after a failed remote
// write, reports the failure, and triggers a refresh so the collection
// converges on whatever the remote actually holds.
func (e *Engine) rollback(ctx context.Context, prev []*task.Task, op, taskID string, cause error) {
	e.store.Restore(prev)
	e.logger.Warn("mutation rolled back", "op", op, "task", taskID, "error", cause)
	e.publisher.Publish(events.NewEvent(events.EventRollback, taskID, events.RollbackData{
		Op:     op,
		Reason: cause.Error(),
	}))

	if err := e.Refresh(ctx); err != nil {
		e.logger.Warn("refresh after rollback failed", "error", err)
	}
}

// calendarWarn reports a failed calendar side effect without failing
// the task mutation it rode along with.
func (e *Engine) calendarWarn(eventID, taskID string, err error) {
	e.logger.Warn("calendar event cleanup failed", "event", eventID, "task", taskID, "error", err)
	e.publisher.Publish(events.NewEvent(events.EventCalendarWarning, taskID, events.CalendarWarningData{
		EventID: eventID,
		Message: err.Error(),
	}))
}

// ensureTag lazily creates a tag the first time a task references it,
// so the tags tab stays in step with what tasks use. Matching is
// case-insensitive like the tag filter.
func (e *Engine) ensureTag(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}
	tags, err := e.remote.ListTags(ctx)
	if err != nil {
		return err
	}
	for _, tg := range tags {
		if strings.EqualFold(tg.Name, name) {
			return nil
		}
	}
	if _, err := e.remote.CreateTag(ctx, name); err != nil {
		return err
	}
	e.logger.Info("tag created", "tag", name)
	return nil
}

// mapRemoteErr converts remote sentinels into the user-facing error
// taxonomy. taskID, when set, marks a write that targeted one task, so
// a not-found means that task vanished remotely; without it a
// not-found is a missing sheet and reads as an availability problem.
func mapRemoteErr(op, taskID string, err error) error {
	switch {
	case errors.Is(err, remote.ErrNotFound) && taskID != "":
		return boarderrors.ErrTaskVanished(taskID).WithCause(err)
	case errors.Is(err, remote.ErrUnauthorized):
		return boarderrors.ErrUnauthorized().WithCause(err)
	case errors.Is(err, remote.ErrMalformed):
		return boarderrors.ErrSheetMalformed(err.Error()).WithCause(err)
	default:
		return boarderrors.ErrRemoteUnavailable(op).WithCause(err)
	}
}

// values flattens the working map an Apply mutation receives.
func values(m map[string]*task.Task) []*task.Task {
	out := make([]*task.Task, 0, len(m))
	for _, t := range m {
		out = append(out, t)
	}
	return out
}
