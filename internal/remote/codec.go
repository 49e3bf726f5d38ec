package remote

import (
	"fmt"
	"strconv"
	"time"

	"github.com/randalmurphal/sheetboard/internal/task"
)

// Column layout of the tasks sheet. The first row is a header; data
// rows follow this fixed order.
const (
	colID = iota
	colTitle
	colDetail
	colAssignee
	colTag
	colStartDate
	colDueDate
	colPriority
	colStatus
	colCreatedAt
	colUpdatedAt
	colCalendarEventID
	colVisibility
	colPredecessorID
	colOrder

	// TaskColumns is the number of cells in a task row.
	TaskColumns = colOrder + 1
)

// Zero-based indices of the cells targeted writes address on their
// own: a column move writes one status cell and a batch of order cells
// rather than whole rows.
const (
	StatusColumn = colStatus
	OrderColumn  = colOrder
)

// Column layouts of the members and tags sheets.
const (
	// UserColumns is the number of cells in a member row
	// (email, name, role, department).
	UserColumns = 4
	// TagColumns is the number of cells in a tag row (id, name, color).
	TagColumns = 3
)

// timestampLayout is the wire format for created/updated stamps.
const timestampLayout = time.RFC3339

// EncodeTaskRow renders a task as sheet cells in column order.
func EncodeTaskRow(t *task.Task) []string {
	row := make([]string, TaskColumns)
	row[colID] = t.ID
	row[colTitle] = t.Title
	row[colDetail] = t.Detail
	row[colAssignee] = t.AssigneeEmail
	row[colTag] = t.Tag
	row[colStartDate] = t.StartDate.String()
	row[colDueDate] = t.DueDate.String()
	row[colPriority] = string(t.GetPriority())
	row[colStatus] = string(t.Status)
	row[colCreatedAt] = encodeTime(t.CreatedAt)
	row[colUpdatedAt] = encodeTime(t.UpdatedAt)
	row[colCalendarEventID] = t.CalendarEventID
	row[colVisibility] = string(t.GetVisibility())
	row[colPredecessorID] = t.PredecessorID
	row[colOrder] = strconv.Itoa(t.Order)
	return row
}

// DecodeTaskRow parses sheet cells into a task. row is the sheet row
// number used in error messages.
//
// Decoding is strict about content and lenient about absence: an empty
// optional cell means "unset", but a cell that holds something this
// client cannot interpret fails the whole fetch with ErrMalformed
// rather than silently zero-filling the field. Rows may arrive shorter
// than TaskColumns because the API trims trailing empty cells; missing
// trailing cells are treated as empty.
func DecodeTaskRow(row int, cells []string) (*task.Task, error) {
	cells = pad(cells, TaskColumns)

	t := &task.Task{
		ID:              cells[colID],
		Title:           cells[colTitle],
		Detail:          cells[colDetail],
		AssigneeEmail:   cells[colAssignee],
		Tag:             cells[colTag],
		CalendarEventID: cells[colCalendarEventID],
		PredecessorID:   cells[colPredecessorID],
	}

	if t.ID == "" {
		return nil, decodeErr(row, "id", "empty")
	}
	if t.Title == "" {
		return nil, decodeErr(row, "title", "empty")
	}

	status := task.Status(cells[colStatus])
	if !task.IsValidStatus(status) {
		return nil, decodeErr(row, "status", fmt.Sprintf("unknown value %q", cells[colStatus]))
	}
	t.Status = status

	if v := cells[colPriority]; v != "" {
		p := task.Priority(v)
		if !task.IsValidPriority(p) {
			return nil, decodeErr(row, "priority", fmt.Sprintf("unknown value %q", v))
		}
		t.Priority = p
	} else {
		t.Priority = task.PriorityMedium
	}

	if v := cells[colVisibility]; v != "" {
		vis := task.Visibility(v)
		if !task.IsValidVisibility(vis) {
			return nil, decodeErr(row, "visibility", fmt.Sprintf("unknown value %q", v))
		}
		t.Visibility = vis
	} else {
		t.Visibility = task.VisibilityPublic
	}

	var err error
	if t.StartDate, err = task.ParseDate(cells[colStartDate]); err != nil {
		return nil, decodeErr(row, "start_date", err.Error())
	}
	if t.DueDate, err = task.ParseDate(cells[colDueDate]); err != nil {
		return nil, decodeErr(row, "due_date", err.Error())
	}

	if t.CreatedAt, err = decodeTime(cells[colCreatedAt]); err != nil {
		return nil, decodeErr(row, "created_at", err.Error())
	}
	if t.UpdatedAt, err = decodeTime(cells[colUpdatedAt]); err != nil {
		return nil, decodeErr(row, "updated_at", err.Error())
	}

	if v := cells[colOrder]; v != "" {
		order, err := strconv.Atoi(v)
		if err != nil {
			return nil, decodeErr(row, "order", fmt.Sprintf("not an integer: %q", v))
		}
		t.Order = order
	}

	return t, nil
}

// DecodeUserRow parses a member row (email, name, role, department).
func DecodeUserRow(row int, cells []string) (*task.User, error) {
	cells = pad(cells, UserColumns)

	u := &task.User{
		Email:      cells[0],
		Name:       cells[1],
		Department: cells[3],
	}
	if u.Email == "" {
		return nil, decodeErr(row, "email", "empty")
	}

	if v := cells[2]; v != "" {
		role := task.Role(v)
		if !task.IsValidRole(role) {
			return nil, decodeErr(row, "role", fmt.Sprintf("unknown value %q", v))
		}
		u.Role = role
	}

	return u, nil
}

// DecodeTagRow parses a tag row (id, name, color).
func DecodeTagRow(row int, cells []string) (*task.Tag, error) {
	cells = pad(cells, TagColumns)

	tg := &task.Tag{ID: cells[0], Name: cells[1], Color: cells[2]}
	if tg.ID == "" {
		return nil, decodeErr(row, "id", "empty")
	}
	if tg.Name == "" {
		return nil, decodeErr(row, "name", "empty")
	}
	return tg, nil
}

// EncodeTagRow renders a tag as sheet cells.
func EncodeTagRow(tg *task.Tag) []string {
	return []string{tg.ID, tg.Name, tg.Color}
}

func encodeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timestampLayout)
}

func decodeTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	ts, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("not a timestamp: %q", s)
	}
	return ts, nil
}

func decodeErr(row int, column, detail string) error {
	return fmt.Errorf("row %d column %s: %s: %w", row, column, detail, ErrMalformed)
}

func pad(cells []string, n int) []string {
	if len(cells) >= n {
		return cells
	}
	padded := make([]string, n)
	copy(padded, cells)
	return padded
}
