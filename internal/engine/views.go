package engine

import (
	"context"
	"time"

	"github.com/randalmurphal/sheetboard/internal/board"
	boarderrors "github.com/randalmurphal/sheetboard/internal/errors"
	"github.com/randalmurphal/sheetboard/internal/task"
	"github.com/randalmurphal/sheetboard/internal/timeline"
)

// Views are recomputed from a fresh snapshot on every call. Nothing
// here caches a derived list; a stale projection rendered after the
// collection moved on is exactly the bug this avoids.

// TimelineView is the scheduling projection of the current collection.
type TimelineView struct {
	// Order lists every scheduled task once, dependency-first.
	Order []*task.Task
	// From and To bound the visible date window.
	From task.Date
	To   task.Date
}

// Board returns the current columns keyed by status, each in display
// order.
func (e *Engine) Board() map[task.Status][]*task.Task {
	return board.Columns(e.store.Snapshot())
}

// Timeline returns the scheduling projection for the current
// collection, windowed around today.
func (e *Engine) Timeline() TimelineView {
	snap := e.store.Snapshot()
	from, to := timeline.Window(snap, task.DateOf(time.Now()))
	return TimelineView{
		Order: timeline.RenderOrder(snap),
		From:  from,
		To:    to,
	}
}

// Snapshot returns the whole collection, newest first.
func (e *Engine) Snapshot() []*task.Task {
	return e.store.Snapshot()
}

// VisibleTasks returns the tasks the viewer may see, newest first.
// Private tasks show only to their assignee.
func (e *Engine) VisibleTasks(viewer string) []*task.Task {
	var out []*task.Task
	for _, t := range e.store.Snapshot() {
		if t.VisibleTo(viewer) {
			out = append(out, t)
		}
	}
	return out
}

// Task returns one task by ID.
func (e *Engine) Task(id string) (*task.Task, error) {
	t, ok := e.store.Get(id)
	if !ok {
		return nil, boarderrors.ErrTaskNotFound(id)
	}
	return t, nil
}

// Users lists the board members from the directory tab.
func (e *Engine) Users(ctx context.Context) ([]*task.User, error) {
	users, err := e.remote.ListUsers(ctx)
	if err != nil {
		return nil, mapRemoteErr("list users", "", err)
	}
	return users, nil
}

// Tags lists the known tags.
func (e *Engine) Tags(ctx context.Context) ([]*task.Tag, error) {
	tags, err := e.remote.ListTags(ctx)
	if err != nil {
		return nil, mapRemoteErr("list tags", "", err)
	}
	return tags, nil
}
