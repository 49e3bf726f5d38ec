package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tidwall/gjson"

	"github.com/randalmurphal/sheetboard/internal/remote"
	"github.com/randalmurphal/sheetboard/internal/task"
)

// call records one request served by the fake gateway.
type call struct {
	method string
	path   string
	body   string
}

// record wraps a handler so tests can assert on the requests made.
func record(calls *[]call, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*calls = append(*calls, call{method: r.Method, path: r.URL.Path, body: string(body)})
		next(w, r)
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	c, err := NewClient(remote.Config{BaseURL: ts.URL, SheetID: "wb1"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

// valuesJSON renders a cell matrix the way the gateway does.
func valuesJSON(rows [][]string) string {
	data, _ := json.Marshal(map[string]any{"values": rows})
	return string(data)
}

func wireTask(id, title string) *task.Task {
	return &task.Task{
		ID:         id,
		Title:      title,
		Status:     task.StatusNotStarted,
		Priority:   task.PriorityMedium,
		Visibility: task.VisibilityPublic,
		CreatedAt:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     remote.Config
		wantErr string
	}{
		{
			name:    "missing base URL",
			cfg:     remote.Config{SheetID: "wb1"},
			wantErr: "base URL is required",
		},
		{
			name:    "missing sheet ID",
			cfg:     remote.Config{BaseURL: "https://gateway.example.com"},
			wantErr: "sheet ID is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.cfg)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want containing %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c, err := NewClient(remote.Config{BaseURL: "https://gateway.example.com/", SheetID: "wb1"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.baseURL != "https://gateway.example.com" {
		t.Errorf("baseURL = %q, want trailing slash trimmed", c.baseURL)
	}
	if c.http == nil {
		t.Error("http client should default")
	}
	if c.logger == nil {
		t.Error("logger should default")
	}
}

func TestListTasks(t *testing.T) {
	a := wireTask("task-a", "Draft launch plan")
	a.StartDate = task.NewDate(2026, time.March, 10)
	a.DueDate = task.NewDate(2026, time.March, 12)
	a.Order = 3
	b := wireTask("task-b", "Review copy")

	var calls []call
	c := newTestClient(t, record(&calls, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, valuesJSON([][]string{remote.EncodeTaskRow(a), remote.EncodeTaskRow(b)}))
	}))

	tasks, err := c.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].ID != "task-a" || tasks[0].Title != "Draft launch plan" {
		t.Errorf("tasks[0] = %s %q", tasks[0].ID, tasks[0].Title)
	}
	if tasks[0].StartDate != a.StartDate || tasks[0].DueDate != a.DueDate {
		t.Errorf("tasks[0] dates = %s..%s", tasks[0].StartDate, tasks[0].DueDate)
	}
	if tasks[0].Order != 3 {
		t.Errorf("tasks[0].Order = %d, want 3", tasks[0].Order)
	}

	if len(calls) != 1 {
		t.Fatalf("got %d requests, want 1", len(calls))
	}
	if calls[0].method != http.MethodGet {
		t.Errorf("method = %s, want GET", calls[0].method)
	}
	if want := "/v1/sheets/wb1/values/tasks!A2:O"; calls[0].path != want {
		t.Errorf("path = %q, want %q", calls[0].path, want)
	}
}

func TestListTasks_Empty(t *testing.T) {
	// A tab with no data rows comes back without a values key.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	})

	tasks, err := c.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("got %d tasks, want 0", len(tasks))
	}
}

func TestListTasks_MalformedRow(t *testing.T) {
	good := remote.EncodeTaskRow(wireTask("task-a", "Fine"))
	bad := remote.EncodeTaskRow(wireTask("task-b", "Broken"))
	bad[remote.StatusColumn] = "paused"

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, valuesJSON([][]string{good, bad}))
	})

	_, err := c.ListTasks(context.Background())
	if !errors.Is(err, remote.ErrMalformed) {
		t.Fatalf("err = %v, want ErrMalformed", err)
	}
	if !strings.Contains(err.Error(), "row 3") {
		t.Errorf("error should name the sheet row: %v", err)
	}
}

func TestCreateTask(t *testing.T) {
	var calls []call
	c := newTestClient(t, record(&calls, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	}))

	if err := c.CreateTask(context.Background(), wireTask("task-new", "Ship it")); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	if len(calls) != 1 {
		t.Fatalf("got %d requests, want 1", len(calls))
	}
	if calls[0].method != http.MethodPost {
		t.Errorf("method = %s, want POST", calls[0].method)
	}
	if want := "/v1/sheets/wb1/values/tasks!A2:O:append"; calls[0].path != want {
		t.Errorf("path = %q, want %q", calls[0].path, want)
	}
	if got := gjson.Get(calls[0].body, "values.0.0").String(); got != "task-new" {
		t.Errorf("first cell = %q, want task id", got)
	}
	if got := gjson.Get(calls[0].body, "values.0.1").String(); got != "Ship it" {
		t.Errorf("second cell = %q, want title", got)
	}
}

func TestUpdateTask(t *testing.T) {
	var calls []call
	c := newTestClient(t, record(&calls, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			io.WriteString(w, valuesJSON([][]string{{"task-a"}, {"task-b"}}))
			return
		}
		io.WriteString(w, `{}`)
	}))

	updated := wireTask("task-b", "Review copy, round two")
	if err := c.UpdateTask(context.Background(), updated); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	if len(calls) != 2 {
		t.Fatalf("got %d requests, want locate + write", len(calls))
	}
	if want := "/v1/sheets/wb1/values/tasks!A2:A"; calls[0].path != want {
		t.Errorf("locate path = %q, want %q", calls[0].path, want)
	}
	if calls[1].method != http.MethodPut {
		t.Errorf("write method = %s, want PUT", calls[1].method)
	}
	// task-b sits in the second data row, sheet row 3.
	if want := "/v1/sheets/wb1/values/tasks!A3:O3"; calls[1].path != want {
		t.Errorf("write path = %q, want %q", calls[1].path, want)
	}
	if got := gjson.Get(calls[1].body, "values.0.1").String(); got != "Review copy, round two" {
		t.Errorf("title cell = %q", got)
	}
}

func TestUpdateTask_Vanished(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, valuesJSON([][]string{{"task-a"}}))
	})

	err := c.UpdateTask(context.Background(), wireTask("task-gone", "Poof"))
	if !errors.Is(err, remote.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateTaskStatus(t *testing.T) {
	var calls []call
	c := newTestClient(t, record(&calls, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			io.WriteString(w, valuesJSON([][]string{{"task-a"}, {"task-b"}}))
			return
		}
		io.WriteString(w, `{}`)
	}))

	if err := c.UpdateTaskStatus(context.Background(), "task-b", task.StatusInProgress); err != nil {
		t.Fatalf("UpdateTaskStatus: %v", err)
	}

	if len(calls) != 2 {
		t.Fatalf("got %d requests, want locate + write", len(calls))
	}
	// Only the status cell is written, not the whole row.
	if want := "/v1/sheets/wb1/values/tasks!I3"; calls[1].path != want {
		t.Errorf("write path = %q, want %q", calls[1].path, want)
	}
	if got := gjson.Get(calls[1].body, "values.0.0").String(); got != "in_progress" {
		t.Errorf("status cell = %q", got)
	}
}

func TestUpdateTaskOrders(t *testing.T) {
	var calls []call
	c := newTestClient(t, record(&calls, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			io.WriteString(w, valuesJSON([][]string{{"task-a"}, {"task-b"}, {"task-c"}}))
			return
		}
		io.WriteString(w, `{}`)
	}))

	updates := []remote.OrderUpdate{
		{TaskID: "task-c", Order: 0},
		{TaskID: "task-a", Order: 1},
		{TaskID: "task-b", Order: 2},
	}
	if err := c.UpdateTaskOrders(context.Background(), updates); err != nil {
		t.Fatalf("UpdateTaskOrders: %v", err)
	}

	// One locate read plus one batched write, regardless of how many
	// rows were renumbered.
	if len(calls) != 2 {
		t.Fatalf("got %d requests, want 2", len(calls))
	}
	if want := "/v1/sheets/wb1/values:batchUpdate"; calls[1].path != want {
		t.Errorf("write path = %q, want %q", calls[1].path, want)
	}

	data := gjson.Get(calls[1].body, "data")
	if len(data.Array()) != 3 {
		t.Fatalf("batch has %d entries, want 3", len(data.Array()))
	}
	if got := gjson.Get(calls[1].body, "data.0.range").String(); got != "tasks!O4" {
		t.Errorf("data[0].range = %q, want tasks!O4", got)
	}
	if got := gjson.Get(calls[1].body, "data.0.values.0.0").String(); got != "0" {
		t.Errorf("data[0] value = %q, want 0", got)
	}
	if got := gjson.Get(calls[1].body, "data.1.range").String(); got != "tasks!O2" {
		t.Errorf("data[1].range = %q, want tasks!O2", got)
	}
}

func TestUpdateTaskOrders_Empty(t *testing.T) {
	var calls []call
	c := newTestClient(t, record(&calls, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	}))

	if err := c.UpdateTaskOrders(context.Background(), nil); err != nil {
		t.Fatalf("UpdateTaskOrders: %v", err)
	}
	if len(calls) != 0 {
		t.Errorf("got %d requests, want none", len(calls))
	}
}

func TestUpdateTaskOrders_UnknownTask(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, valuesJSON([][]string{{"task-a"}}))
	})

	err := c.UpdateTaskOrders(context.Background(), []remote.OrderUpdate{{TaskID: "task-x", Order: 0}})
	if !errors.Is(err, remote.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteTask(t *testing.T) {
	var calls []call
	c := newTestClient(t, record(&calls, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			io.WriteString(w, valuesJSON([][]string{
				{"task-a", "Draft launch plan"},
				{"task-b", "Review copy"},
			}))
			return
		}
		io.WriteString(w, `{}`)
	}))

	if err := c.DeleteTask(context.Background(), "task-a", "Draft launch plan"); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}

	if len(calls) != 2 {
		t.Fatalf("got %d requests, want locate + delete", len(calls))
	}
	// Deletes locate by ID and title so duplicates can be told apart.
	if want := "/v1/sheets/wb1/values/tasks!A2:B"; calls[0].path != want {
		t.Errorf("locate path = %q, want %q", calls[0].path, want)
	}
	if want := "/v1/sheets/wb1/rows:delete"; calls[1].path != want {
		t.Errorf("delete path = %q, want %q", calls[1].path, want)
	}
	if got := gjson.Get(calls[1].body, "sheet").String(); got != "tasks" {
		t.Errorf("sheet = %q, want tasks", got)
	}
	if got := gjson.Get(calls[1].body, "row").Int(); got != 2 {
		t.Errorf("row = %d, want 2", got)
	}
}

func TestDeleteTask_DuplicateRows(t *testing.T) {
	// Hand-copied rows leave two rows with one ID. The title hint picks
	// the right one; when it cannot, the delete refuses to guess.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			io.WriteString(w, valuesJSON([][]string{
				{"task-a", "Draft launch plan"},
				{"task-a", "Draft launch plan (copy)"},
			}))
			return
		}
		io.WriteString(w, `{}`)
	})

	err := c.DeleteTask(context.Background(), "task-a", "Draft launch plan (copy)")
	if err != nil {
		t.Fatalf("DeleteTask with resolving hint: %v", err)
	}

	err = c.DeleteTask(context.Background(), "task-a", "A title on neither row")
	if !errors.Is(err, remote.ErrMalformed) {
		t.Fatalf("err = %v, want ErrMalformed", err)
	}

	err = c.DeleteTask(context.Background(), "task-a", "")
	if !errors.Is(err, remote.ErrMalformed) {
		t.Fatalf("err with empty hint = %v, want ErrMalformed", err)
	}
}

func TestDeleteTask_DuplicateRowTarget(t *testing.T) {
	var calls []call
	c := newTestClient(t, record(&calls, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			io.WriteString(w, valuesJSON([][]string{
				{"task-a", "Draft launch plan"},
				{"task-a", "Draft launch plan (copy)"},
			}))
			return
		}
		io.WriteString(w, `{}`)
	}))

	if err := c.DeleteTask(context.Background(), "task-a", "Draft launch plan (copy)"); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	// The second data row is sheet row 3.
	if got := gjson.Get(calls[1].body, "row").Int(); got != 3 {
		t.Errorf("row = %d, want 3", got)
	}
}

func TestListUsers(t *testing.T) {
	var calls []call
	c := newTestClient(t, record(&calls, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, valuesJSON([][]string{
			{"ana@example.com", "Ana", "admin", "Platform"},
			{"bo@example.com", "Bo"},
		}))
	}))

	users, err := c.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("got %d users, want 2", len(users))
	}
	if users[0].Email != "ana@example.com" || users[0].Role != task.RoleAdmin {
		t.Errorf("users[0] = %+v", users[0])
	}
	if want := "/v1/sheets/wb1/values/members!A2:D"; calls[0].path != want {
		t.Errorf("path = %q, want %q", calls[0].path, want)
	}
}

func TestListTags(t *testing.T) {
	var calls []call
	c := newTestClient(t, record(&calls, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, valuesJSON([][]string{{"tag-1", "launch", "#ff0000"}}))
	}))

	tags, err := c.ListTags(context.Background())
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 1 || tags[0].Name != "launch" {
		t.Fatalf("tags = %+v", tags)
	}
	if want := "/v1/sheets/wb1/values/tags!A2:C"; calls[0].path != want {
		t.Errorf("path = %q, want %q", calls[0].path, want)
	}
}

func TestCreateTag(t *testing.T) {
	var calls []call
	c := newTestClient(t, record(&calls, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	}))

	tg, err := c.CreateTag(context.Background(), "launch")
	if err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	if tg.ID == "" {
		t.Error("tag ID should be generated client-side")
	}
	if tg.Name != "launch" {
		t.Errorf("tag name = %q", tg.Name)
	}

	if want := "/v1/sheets/wb1/values/tags!A2:C:append"; calls[0].path != want {
		t.Errorf("path = %q, want %q", calls[0].path, want)
	}
	if got := gjson.Get(calls[0].body, "values.0.0").String(); got != tg.ID {
		t.Errorf("appended id = %q, want %q", got, tg.ID)
	}
}

func TestAddCalendarEvent(t *testing.T) {
	var calls []call
	c := newTestClient(t, record(&calls, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id": "evt-9"}`)
	}))

	tk := wireTask("task-a", "Launch day")
	tk.StartDate = task.NewDate(2026, time.March, 10)
	tk.DueDate = task.NewDate(2026, time.March, 12)

	id, err := c.AddCalendarEvent(context.Background(), tk)
	if err != nil {
		t.Fatalf("AddCalendarEvent: %v", err)
	}
	if id != "evt-9" {
		t.Errorf("event id = %q, want evt-9", id)
	}

	if len(calls) != 1 {
		t.Fatalf("got %d requests, want 1", len(calls))
	}
	if calls[0].method != http.MethodPost || calls[0].path != "/v1/calendar/events" {
		t.Errorf("request = %s %s", calls[0].method, calls[0].path)
	}
	if got := gjson.Get(calls[0].body, "summary").String(); got != "Launch day" {
		t.Errorf("summary = %q", got)
	}
	if got := gjson.Get(calls[0].body, "start.date").String(); got != "2026-03-10" {
		t.Errorf("start.date = %q", got)
	}
	// The calendar end date is exclusive, so a bar through the due date
	// ends one day after it.
	if got := gjson.Get(calls[0].body, "end.date").String(); got != "2026-03-13" {
		t.Errorf("end.date = %q, want 2026-03-13", got)
	}
}

func TestAddCalendarEvent_NoID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	})

	tk := wireTask("task-a", "Launch day")
	tk.StartDate = task.NewDate(2026, time.March, 10)
	tk.DueDate = task.NewDate(2026, time.March, 12)

	_, err := c.AddCalendarEvent(context.Background(), tk)
	if !errors.Is(err, remote.ErrMalformed) {
		t.Fatalf("err = %v, want ErrMalformed", err)
	}
}

func TestAddCalendarEvent_Unscheduled(t *testing.T) {
	var calls []call
	c := newTestClient(t, record(&calls, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id": "evt-9"}`)
	}))

	_, err := c.AddCalendarEvent(context.Background(), wireTask("task-a", "No dates"))
	if err == nil {
		t.Fatal("expected error for unscheduled task")
	}
	if len(calls) != 0 {
		t.Errorf("got %d requests, want none", len(calls))
	}
}

func TestRemoveCalendarEvent(t *testing.T) {
	var calls []call
	c := newTestClient(t, record(&calls, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	}))

	if err := c.RemoveCalendarEvent(context.Background(), "evt-9"); err != nil {
		t.Fatalf("RemoveCalendarEvent: %v", err)
	}

	if calls[0].method != http.MethodDelete || calls[0].path != "/v1/calendar/events/evt-9" {
		t.Errorf("request = %s %s", calls[0].method, calls[0].path)
	}
}

func TestRemoveCalendarEvent_Gone(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := c.RemoveCalendarEvent(context.Background(), "evt-9")
	if !errors.Is(err, remote.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestStatusClassification(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, remote.ErrUnauthorized},
		{http.StatusForbidden, remote.ErrUnauthorized},
		{http.StatusNotFound, remote.ErrNotFound},
		{http.StatusInternalServerError, remote.ErrUnavailable},
		{http.StatusServiceUnavailable, remote.ErrUnavailable},
	}

	for _, tt := range tests {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		})

		_, err := c.ListTasks(context.Background())
		if !errors.Is(err, tt.want) {
			t.Errorf("status %d: err = %v, want %v", tt.status, err, tt.want)
		}
	}
}

func TestTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c, err := NewClient(remote.Config{BaseURL: ts.URL, SheetID: "wb1"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	ts.Close()

	_, err = c.ListTasks(context.Background())
	if !errors.Is(err, remote.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}
