package sheets

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/randalmurphal/sheetboard/internal/remote"
	"github.com/randalmurphal/sheetboard/internal/task"
)

// AddCalendarEvent implements remote.Store. The gateway exposes the
// team calendar next to the workbook; events are all-day, and the end
// date is exclusive, so a bar through its due date needs due + 1 here.
// That quirk stays inside this adapter.
func (c *Client) AddCalendarEvent(ctx context.Context, t *task.Task) (string, error) {
	if !t.Scheduled() {
		return "", fmt.Errorf("add calendar event for task %s: task has no dates", t.ID)
	}

	url := fmt.Sprintf("%s/v1/calendar/events", c.baseURL)
	payload := map[string]any{
		"summary": t.Title,
		"start":   map[string]string{"date": t.StartDate.String()},
		"end":     map[string]string{"date": t.DueDate.AddDays(1).String()},
	}

	body, err := c.request(ctx, http.MethodPost, url, payload)
	if err != nil {
		return "", fmt.Errorf("add calendar event for task %s: %w", t.ID, err)
	}

	id := gjson.Get(body, "id")
	if !id.Exists() || id.String() == "" {
		return "", fmt.Errorf("add calendar event for task %s: response has no event id: %w", t.ID, remote.ErrMalformed)
	}
	return id.String(), nil
}

// RemoveCalendarEvent implements remote.Store.
func (c *Client) RemoveCalendarEvent(ctx context.Context, eventID string) error {
	url := fmt.Sprintf("%s/v1/calendar/events/%s", c.baseURL, eventID)
	if _, err := c.request(ctx, http.MethodDelete, url, nil); err != nil {
		return fmt.Errorf("remove calendar event %s: %w", eventID, err)
	}
	return nil
}
