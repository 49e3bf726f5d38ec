// Package remote defines the adapter boundary over the shared
// spreadsheet that persists the board.
//
// The remote service is row-oriented and weakly consistent: every call
// stands alone, nothing here is transactional, and concurrent clients
// may interleave writes arbitrarily. The sync engine compensates with
// optimistic local state, rollback snapshots and periodic refreshes;
// implementations of Store only translate calls into row operations
// and never try to be cleverer than that.
package remote

import (
	"context"
	"errors"

	"github.com/randalmurphal/sheetboard/internal/task"
)

// Sentinel errors implementations map their transport failures onto.
// The sync engine keys its rollback and messaging behavior off these.
var (
	// ErrNotFound means the addressed row no longer exists remotely.
	ErrNotFound = errors.New("remote: row not found")
	// ErrUnavailable means the service could not be reached or refused
	// the request transiently.
	ErrUnavailable = errors.New("remote: service unavailable")
	// ErrUnauthorized means the credentials were rejected.
	ErrUnauthorized = errors.New("remote: unauthorized")
	// ErrMalformed means remote rows could not be decoded. The decoder
	// fails loudly instead of zero-filling fields it cannot read.
	ErrMalformed = errors.New("remote: malformed row")
)

// OrderUpdate assigns a task its renumbered position after a move.
type OrderUpdate struct {
	TaskID string
	Order  int
}

// Store is the persistence adapter for the shared board. All
// implementations must be safe for concurrent use. Calls take a
// context because every operation crosses the network in the real
// implementation; none of them retry internally.
type Store interface {
	// Task rows
	ListTasks(ctx context.Context) ([]*task.Task, error)
	CreateTask(ctx context.Context, t *task.Task) error
	UpdateTask(ctx context.Context, t *task.Task) error
	UpdateTaskStatus(ctx context.Context, id string, status task.Status) error
	UpdateTaskOrders(ctx context.Context, updates []OrderUpdate) error
	// DeleteTask removes the task's row. hint carries the task title
	// as the caller last saw it; implementations that address rows
	// positionally may use it to pick between rows sharing an ID, and
	// may ignore it otherwise. An empty hint is allowed.
	DeleteTask(ctx context.Context, id, hint string) error

	// Directory rows
	ListUsers(ctx context.Context) ([]*task.User, error)
	ListTags(ctx context.Context) ([]*task.Tag, error)
	CreateTag(ctx context.Context, name string) (*task.Tag, error)

	// Calendar events. AddCalendarEvent returns the created event ID;
	// the caller stores it on the task row.
	AddCalendarEvent(ctx context.Context, t *task.Task) (string, error)
	RemoveCalendarEvent(ctx context.Context, eventID string) error

	// Close releases resources.
	Close() error
}
