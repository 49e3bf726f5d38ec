package remote

import (
	"context"
	"fmt"
	"sync"

	"github.com/randalmurphal/sheetboard/internal/task"
)

func init() {
	Register(KindMemory, func(cfg Config) (Store, error) {
		return NewMemory(), nil
	})
}

// Memory is an in-process Store. It backs engine tests and the demo
// mode, and offers per-operation fault injection so failure paths
// (rollback, refresh-after-error) can be exercised deterministically.
type Memory struct {
	mu        sync.Mutex
	tasks     map[string]*task.Task
	users     []*task.User
	tags      []*task.Tag
	calendar  map[string]string // event ID -> task ID
	calls     []string
	errs      map[string]error
	nextEvent int
	nextTag   int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		tasks:    make(map[string]*task.Task),
		calendar: make(map[string]string),
		errs:     make(map[string]error),
	}
}

// Seed inserts tasks directly, bypassing call recording.
func (m *Memory) Seed(tasks ...*task.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range tasks {
		m.tasks[t.ID] = t.Clone()
	}
}

// SeedUsers replaces the member directory.
func (m *Memory) SeedUsers(users ...*task.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = users
}

// SeedTags replaces the tag list.
func (m *Memory) SeedTags(tags ...*task.Tag) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tags = tags
}

// SetError makes the named operation fail with err until cleared with
// a nil err. Operation names match the Store method names.
func (m *Memory) SetError(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.errs, op)
		return
	}
	m.errs[op] = err
}

// Calls returns the operations invoked so far, in order.
func (m *Memory) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// ClearCalls resets the recorded call list.
func (m *Memory) ClearCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Task returns the stored task with the given ID, or nil.
func (m *Memory) Task(id string) *task.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return nil
	}
	return t.Clone()
}

// CalendarEvents returns the live event IDs.
func (m *Memory) CalendarEvents() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for id := range m.calendar {
		ids = append(ids, id)
	}
	return ids
}

func (m *Memory) begin(op string) error {
	m.calls = append(m.calls, op)
	if err := m.errs[op]; err != nil {
		return err
	}
	return nil
}

// ListTasks implements Store.
func (m *Memory) ListTasks(ctx context.Context) ([]*task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("ListTasks"); err != nil {
		return nil, err
	}
	out := make([]*task.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		out = append(out, t.Clone())
	}
	return out, nil
}

// CreateTask implements Store.
func (m *Memory) CreateTask(ctx context.Context, t *task.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("CreateTask"); err != nil {
		return err
	}
	m.tasks[t.ID] = t.Clone()
	return nil
}

// UpdateTask implements Store.
func (m *Memory) UpdateTask(ctx context.Context, t *task.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("UpdateTask"); err != nil {
		return err
	}
	if _, ok := m.tasks[t.ID]; !ok {
		return fmt.Errorf("update task %s: %w", t.ID, ErrNotFound)
	}
	m.tasks[t.ID] = t.Clone()
	return nil
}

// UpdateTaskStatus implements Store.
func (m *Memory) UpdateTaskStatus(ctx context.Context, id string, status task.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("UpdateTaskStatus"); err != nil {
		return err
	}
	t, ok := m.tasks[id]
	if !ok {
		return fmt.Errorf("update status of task %s: %w", id, ErrNotFound)
	}
	t.Status = status
	return nil
}

// UpdateTaskOrders implements Store.
func (m *Memory) UpdateTaskOrders(ctx context.Context, updates []OrderUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("UpdateTaskOrders"); err != nil {
		return err
	}
	for _, u := range updates {
		t, ok := m.tasks[u.TaskID]
		if !ok {
			return fmt.Errorf("update order of task %s: %w", u.TaskID, ErrNotFound)
		}
		t.Order = u.Order
	}
	return nil
}

// DeleteTask implements Store. Tasks here are keyed by ID, so the
// hint has nothing to disambiguate and is ignored.
func (m *Memory) DeleteTask(ctx context.Context, id, hint string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("DeleteTask"); err != nil {
		return err
	}
	if _, ok := m.tasks[id]; !ok {
		return fmt.Errorf("delete task %s: %w", id, ErrNotFound)
	}
	delete(m.tasks, id)
	return nil
}

// ListUsers implements Store.
func (m *Memory) ListUsers(ctx context.Context) ([]*task.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("ListUsers"); err != nil {
		return nil, err
	}
	return append([]*task.User(nil), m.users...), nil
}

// ListTags implements Store.
func (m *Memory) ListTags(ctx context.Context) ([]*task.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("ListTags"); err != nil {
		return nil, err
	}
	return append([]*task.Tag(nil), m.tags...), nil
}

// CreateTag implements Store.
func (m *Memory) CreateTag(ctx context.Context, name string) (*task.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("CreateTag"); err != nil {
		return nil, err
	}
	m.nextTag++
	tg := &task.Tag{ID: fmt.Sprintf("tag-%d", m.nextTag), Name: name}
	m.tags = append(m.tags, tg)
	return tg, nil
}

// AddCalendarEvent implements Store.
func (m *Memory) AddCalendarEvent(ctx context.Context, t *task.Task) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("AddCalendarEvent"); err != nil {
		return "", err
	}
	m.nextEvent++
	id := fmt.Sprintf("evt-%d", m.nextEvent)
	m.calendar[id] = t.ID
	return id, nil
}

// RemoveCalendarEvent implements Store.
func (m *Memory) RemoveCalendarEvent(ctx context.Context, eventID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("RemoveCalendarEvent"); err != nil {
		return err
	}
	if _, ok := m.calendar[eventID]; !ok {
		return fmt.Errorf("remove calendar event %s: %w", eventID, ErrNotFound)
	}
	delete(m.calendar, eventID)
	return nil
}

// Close implements Store.
func (m *Memory) Close() error {
	return nil
}
