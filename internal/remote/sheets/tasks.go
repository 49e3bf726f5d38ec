package sheets

import (
	"context"
	"fmt"
	"net/http"

	"github.com/randalmurphal/sheetboard/internal/remote"
	"github.com/randalmurphal/sheetboard/internal/task"
)

// lastTaskCol is the letter of the final task column.
var lastTaskCol = colLetter(remote.TaskColumns - 1)

// dataRange returns the data-row range of a tab (row 1 is the header).
func dataRange(tab, lastCol string) string {
	return fmt.Sprintf("%s!A2:%s", tab, lastCol)
}

// ListTasks implements remote.Store. It reads the whole tasks tab and
// decodes every row; a single malformed row fails the fetch.
func (c *Client) ListTasks(ctx context.Context) ([]*task.Task, error) {
	body, err := c.request(ctx, http.MethodGet, c.valuesURL(dataRange(tabTasks, lastTaskCol)), nil)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	matrix, err := rows(body)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]*task.Task, 0, len(matrix))
	for i, cells := range matrix {
		t, err := remote.DecodeTaskRow(i+2, cells)
		if err != nil {
			return nil, fmt.Errorf("list tasks: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// CreateTask implements remote.Store by appending one row to the
// tasks tab.
func (c *Client) CreateTask(ctx context.Context, t *task.Task) error {
	url := c.valuesURL(dataRange(tabTasks, lastTaskCol)) + ":append"
	payload := map[string]any{"values": [][]string{remote.EncodeTaskRow(t)}}
	if _, err := c.request(ctx, http.MethodPost, url, payload); err != nil {
		return fmt.Errorf("create task %s: %w", t.ID, err)
	}
	return nil
}

// UpdateTask implements remote.Store by overwriting the task's row.
func (c *Client) UpdateTask(ctx context.Context, t *task.Task) error {
	row, err := c.locateRow(ctx, tabTasks, t.ID)
	if err != nil {
		return fmt.Errorf("update task %s: %w", t.ID, err)
	}

	rng := fmt.Sprintf("%s!A%d:%s%d", tabTasks, row, lastTaskCol, row)
	payload := map[string]any{"values": [][]string{remote.EncodeTaskRow(t)}}
	if _, err := c.request(ctx, http.MethodPut, c.valuesURL(rng), payload); err != nil {
		return fmt.Errorf("update task %s: %w", t.ID, err)
	}
	return nil
}

// UpdateTaskStatus implements remote.Store by writing only the status
// cell of the task's row.
func (c *Client) UpdateTaskStatus(ctx context.Context, id string, status task.Status) error {
	row, err := c.locateRow(ctx, tabTasks, id)
	if err != nil {
		return fmt.Errorf("update status of task %s: %w", id, err)
	}

	rng := c.cellRange(statusCol(), row)
	payload := map[string]any{"values": [][]string{{string(status)}}}
	if _, err := c.request(ctx, http.MethodPut, c.valuesURL(rng), payload); err != nil {
		return fmt.Errorf("update status of task %s: %w", id, err)
	}
	return nil
}

// UpdateTaskOrders implements remote.Store with one batched write
// covering every renumbered cell, so a column reorder costs a single
// request no matter how many rows shifted.
func (c *Client) UpdateTaskOrders(ctx context.Context, updates []remote.OrderUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	rowsByID, err := c.rowIndex(ctx, tabTasks)
	if err != nil {
		return fmt.Errorf("update task orders: %w", err)
	}

	var data []map[string]any
	for _, u := range updates {
		row, ok := rowsByID[u.TaskID]
		if !ok {
			return fmt.Errorf("update task orders: task %s: %w", u.TaskID, remote.ErrNotFound)
		}
		data = append(data, map[string]any{
			"range":  c.cellRange(orderCol(), row),
			"values": [][]string{{fmt.Sprintf("%d", u.Order)}},
		})
	}

	url := fmt.Sprintf("%s/v1/sheets/%s/values:batchUpdate", c.baseURL, c.sheetID)
	if _, err := c.request(ctx, http.MethodPost, url, map[string]any{"data": data}); err != nil {
		return fmt.Errorf("update task orders: %w", err)
	}
	return nil
}

// DeleteTask implements remote.Store by removing the task's row. The
// hint is the task title as the caller last saw it; hand-copied rows
// in a shared sheet occasionally leave two rows with one ID, and a
// delete must not guess which one the user meant.
func (c *Client) DeleteTask(ctx context.Context, id, hint string) error {
	row, err := c.locateRowForDelete(ctx, id, hint)
	if err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}

	url := fmt.Sprintf("%s/v1/sheets/%s/rows:delete", c.baseURL, c.sheetID)
	payload := map[string]any{"sheet": tabTasks, "row": row}
	if _, err := c.request(ctx, http.MethodPost, url, payload); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return nil
}

// locateRowForDelete scans the ID and title columns for rows holding
// id. A unique row wins outright; duplicates are resolved only when
// the hint matches exactly one title, otherwise the call fails rather
// than remove a row the caller may not have meant.
func (c *Client) locateRowForDelete(ctx context.Context, id, hint string) (int, error) {
	rng := fmt.Sprintf("%s!A2:B", tabTasks)
	body, err := c.request(ctx, http.MethodGet, c.valuesURL(rng), nil)
	if err != nil {
		return 0, err
	}
	matrix, err := rows(body)
	if err != nil {
		return 0, err
	}

	var matched, hinted []int
	for i, cells := range matrix {
		if len(cells) == 0 || cells[0] != id {
			continue
		}
		matched = append(matched, i+2)
		if hint != "" && len(cells) > 1 && cells[1] == hint {
			hinted = append(hinted, i+2)
		}
	}

	switch {
	case len(matched) == 0:
		return 0, fmt.Errorf("no row with id %s: %w", id, remote.ErrNotFound)
	case len(matched) == 1:
		return matched[0], nil
	case len(hinted) == 1:
		return hinted[0], nil
	default:
		return 0, fmt.Errorf("rows %v share id %s and the title does not single one out: %w", matched, id, remote.ErrMalformed)
	}
}

// locateRow finds the sheet row holding the given ID by scanning the
// tab's ID column. Row addressing is positional, so every targeted
// write re-locates its row immediately before writing.
func (c *Client) locateRow(ctx context.Context, tab, id string) (int, error) {
	rowsByID, err := c.rowIndex(ctx, tab)
	if err != nil {
		return 0, err
	}
	row, ok := rowsByID[id]
	if !ok {
		return 0, fmt.Errorf("no row with id %s: %w", id, remote.ErrNotFound)
	}
	return row, nil
}

// rowIndex reads a tab's ID column and maps each ID to its sheet row.
func (c *Client) rowIndex(ctx context.Context, tab string) (map[string]int, error) {
	rng := fmt.Sprintf("%s!A2:A", tab)
	body, err := c.request(ctx, http.MethodGet, c.valuesURL(rng), nil)
	if err != nil {
		return nil, err
	}
	matrix, err := rows(body)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(matrix))
	for i, cells := range matrix {
		if len(cells) > 0 && cells[0] != "" {
			index[cells[0]] = i + 2
		}
	}
	return index, nil
}

// cellRange addresses a single cell in the tasks tab.
func (c *Client) cellRange(col string, row int) string {
	return fmt.Sprintf("%s!%s%d", tabTasks, col, row)
}

func statusCol() string { return colLetter(remote.StatusColumn) }
func orderCol() string  { return colLetter(remote.OrderColumn) }
