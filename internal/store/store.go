// Package store holds the authoritative in-memory task collection.
//
// The collection is what every view renders from between refreshes.
// Mutations run atomically and hand back a pre-mutation snapshot so a
// failed remote write can roll the collection back to exactly the
// state the user last saw confirmed.
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/randalmurphal/sheetboard/internal/task"
)

// Store is the authoritative in-memory task collection. All access is
// serialized by an internal mutex, and every read hands out deep
// copies: callers never alias live state, and derived views (board
// columns, timeline order) are recomputed from a snapshot each time
// rather than cached.
type Store struct {
	mu       sync.Mutex
	tasks    map[string]*task.Task
	dirty    bool
	syncedAt time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{tasks: make(map[string]*task.Task)}
}

// NewFrom creates a store seeded with copies of the given tasks.
func NewFrom(tasks []*task.Task) *Store {
	s := New()
	s.Replace(tasks)
	return s
}

// Snapshot returns deep copies of all tasks, newest first. The result
// doubles as a rollback token for Restore.
func (s *Store) Snapshot() []*task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() []*task.Task {
	out := make([]*task.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Apply runs the mutation atomically and returns the pre-mutation
// snapshot for rollback. The mutation receives a working copy of the
// collection; it is swapped in only when the mutation returns nil, so
// an error leaves the store untouched.
func (s *Store) Apply(mutate func(tasks map[string]*task.Task) error) ([]*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.snapshotLocked()
	work := make(map[string]*task.Task, len(s.tasks))
	for id, t := range s.tasks {
		work[id] = t.Clone()
	}

	if err := mutate(work); err != nil {
		return nil, err
	}

	s.tasks = work
	s.dirty = true
	return prev, nil
}

// Restore rolls the collection back to a snapshot taken by Apply.
func (s *Store) Restore(snapshot []*task.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = indexClones(snapshot)
}

// Replace swaps in a freshly fetched collection wholesale. Any local
// state not reflected remotely is discarded (last fetch wins).
func (s *Store) Replace(tasks []*task.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = indexClones(tasks)
	s.dirty = false
	s.syncedAt = time.Now()
}

// Get returns a copy of the task with the given ID.
func (s *Store) Get(id string) (*task.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

// Len returns the number of tasks held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Dirty returns true when a local mutation has been applied since the
// last Replace.
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// SyncedAt returns when the collection was last replaced by a fetch.
// Zero if no fetch has landed yet.
func (s *Store) SyncedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncedAt
}

func indexClones(tasks []*task.Task) map[string]*task.Task {
	m := make(map[string]*task.Task, len(tasks))
	for _, t := range tasks {
		m[t.ID] = t.Clone()
	}
	return m
}
