package task

import (
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	tk := New("Write launch notes")

	if tk.ID == "" {
		t.Error("expected ID to be generated")
	}
	if tk.Title != "Write launch notes" {
		t.Errorf("expected Title 'Write launch notes', got %s", tk.Title)
	}
	if tk.Status != StatusNotStarted {
		t.Errorf("expected Status %s, got %s", StatusNotStarted, tk.Status)
	}
	if tk.Priority != PriorityMedium {
		t.Errorf("expected Priority %s, got %s", PriorityMedium, tk.Priority)
	}
	if tk.Visibility != VisibilityPublic {
		t.Errorf("expected Visibility %s, got %s", VisibilityPublic, tk.Visibility)
	}
	if tk.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if !tk.UpdatedAt.Equal(tk.CreatedAt) {
		t.Error("expected UpdatedAt to equal CreatedAt on a fresh task")
	}
}

func TestNewGeneratesUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tk := New("t")
		if seen[tk.ID] {
			t.Fatalf("duplicate ID generated: %s", tk.ID)
		}
		seen[tk.ID] = true
	}
}

func TestTouch(t *testing.T) {
	tk := New("t")
	before := tk.UpdatedAt
	time.Sleep(time.Millisecond)
	tk.Touch()
	if !tk.UpdatedAt.After(before) {
		t.Error("expected Touch to advance UpdatedAt")
	}
}

func TestVisibleTo(t *testing.T) {
	tests := []struct {
		name       string
		visibility Visibility
		assignee   string
		viewer     string
		want       bool
	}{
		{"public seen by anyone", VisibilityPublic, "ann@example.com", "bob@example.com", true},
		{"public seen by assignee", VisibilityPublic, "ann@example.com", "ann@example.com", true},
		{"private hidden from others", VisibilityPrivate, "ann@example.com", "bob@example.com", false},
		{"private seen by assignee", VisibilityPrivate, "ann@example.com", "ann@example.com", true},
		{"private unassigned hidden from all", VisibilityPrivate, "", "ann@example.com", false},
		{"unset visibility defaults public", "", "ann@example.com", "bob@example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := &Task{Visibility: tt.visibility, AssigneeEmail: tt.assignee}
			if got := tk.VisibleTo(tt.viewer); got != tt.want {
				t.Errorf("VisibleTo(%q) = %v, want %v", tt.viewer, got, tt.want)
			}
		})
	}
}

func TestScheduled(t *testing.T) {
	start := NewDate(2026, time.March, 2)
	due := NewDate(2026, time.March, 6)

	tests := []struct {
		name  string
		start Date
		due   Date
		want  bool
	}{
		{"both set", start, due, true},
		{"no start", Date{}, due, false},
		{"no due", start, Date{}, false},
		{"neither", Date{}, Date{}, false},
	}

	for _, tt := range tests {
		tk := &Task{StartDate: tt.start, DueDate: tt.due}
		if got := tk.Scheduled(); got != tt.want {
			t.Errorf("%s: Scheduled() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := New("ok")

	tests := []struct {
		name    string
		mutate  func(*Task)
		wantErr bool
	}{
		{"valid task", func(*Task) {}, false},
		{"missing title", func(tk *Task) { tk.Title = "  " }, true},
		{"missing id", func(tk *Task) { tk.ID = "" }, true},
		{"bad status", func(tk *Task) { tk.Status = "archived" }, true},
		{"bad priority", func(tk *Task) { tk.Priority = "urgent" }, true},
		{"bad visibility", func(tk *Task) { tk.Visibility = "secret" }, true},
		{"self predecessor", func(tk *Task) { tk.PredecessorID = tk.ID }, true},
		{"inverted dates", func(tk *Task) {
			tk.StartDate = NewDate(2026, time.March, 10)
			tk.DueDate = NewDate(2026, time.March, 5)
		}, true},
		{"start only", func(tk *Task) { tk.StartDate = NewDate(2026, time.March, 10) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := valid.Clone()
			tt.mutate(tk)
			errs := tk.Validate()
			if errs.HasErrors() != tt.wantErr {
				t.Errorf("Validate() errors = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func TestClip(t *testing.T) {
	tests := []struct {
		index, n, want int
	}{
		{-1, 5, 0},
		{0, 5, 0},
		{3, 5, 3},
		{5, 5, 5},
		{99, 5, 5},
		{0, 0, 0},
		{-3, 0, 0},
	}

	for _, tt := range tests {
		if got := Clip(tt.index, tt.n); got != tt.want {
			t.Errorf("Clip(%d, %d) = %d, want %d", tt.index, tt.n, got, tt.want)
		}
	}
}

func TestClone(t *testing.T) {
	tk := New("original")
	tk.Tag = "design"
	c := tk.Clone()
	c.Title = "changed"
	c.Tag = "ops"

	if tk.Title != "original" || tk.Tag != "design" {
		t.Error("mutating a clone changed the original")
	}
}
