// Package sheets implements the remote store over the spreadsheet
// gateway's row-oriented web API.
//
// The gateway exposes sheet tabs as value ranges (read a range, append
// a row, overwrite a range, delete a row) plus all-day calendar
// events. There are no transactions and no conditional writes; every
// call here is one HTTP request, and the sync engine layers its
// optimistic bookkeeping on top.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/randalmurphal/sheetboard/internal/remote"
)

// Sheet tabs that make up the board workbook.
const (
	tabTasks   = "tasks"
	tabMembers = "members"
	tabTags    = "tags"
)

func init() {
	remote.Register(remote.KindSheets, func(cfg remote.Config) (remote.Store, error) {
		return NewClient(cfg)
	})
}

// Client talks to the spreadsheet gateway. It holds an authenticated
// HTTP session supplied by the caller; the client itself never
// acquires or refreshes credentials.
type Client struct {
	baseURL string
	sheetID string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a gateway client from the given configuration.
func NewClient(cfg remote.Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("sheets base URL is required")
	}
	if cfg.SheetID == "" {
		return nil, fmt.Errorf("sheet ID is required")
	}

	httpClient := cfg.Client
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		sheetID: cfg.SheetID,
		http:    httpClient,
		logger:  logger,
	}, nil
}

// Close implements remote.Store.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// valuesURL addresses a cell range in the workbook.
func (c *Client) valuesURL(rng string) string {
	return fmt.Sprintf("%s/v1/sheets/%s/values/%s", c.baseURL, c.sheetID, rng)
}

// request performs one gateway call and returns the response body.
// Transport failures and non-2xx statuses are mapped onto the remote
// sentinel errors so the engine can react without knowing HTTP.
func (c *Client) request(ctx context.Context, method, url string, payload any) (string, error) {
	op := fmt.Sprintf("%s %s", method, url)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return "", fmt.Errorf("encode request %s: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return "", fmt.Errorf("build request %s: %w", op, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %v: %w", op, err, remote.ErrUnavailable)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%s: read response: %v: %w", op, err, remote.ErrUnavailable)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", classify(op, resp.StatusCode)
	}
	return string(data), nil
}

// classify maps a gateway status code onto a sentinel error.
func classify(op string, status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%s: status %d: %w", op, status, remote.ErrUnauthorized)
	case status == http.StatusNotFound:
		return fmt.Errorf("%s: status %d: %w", op, status, remote.ErrNotFound)
	default:
		return fmt.Errorf("%s: status %d: %w", op, status, remote.ErrUnavailable)
	}
}

// rows extracts the cell matrix from a values response. A sheet with
// no data rows comes back without a "values" key at all, which is a
// legal empty result; anything else unexpected fails loudly.
func rows(body string) ([][]string, error) {
	values := gjson.Get(body, "values")
	if !values.Exists() {
		return nil, nil
	}
	if !values.IsArray() {
		return nil, fmt.Errorf("response field \"values\" is not an array: %w", remote.ErrMalformed)
	}

	var out [][]string
	for _, row := range values.Array() {
		if !row.IsArray() {
			return nil, fmt.Errorf("response row %d is not an array: %w", len(out), remote.ErrMalformed)
		}
		var cells []string
		for _, cell := range row.Array() {
			cells = append(cells, cell.String())
		}
		out = append(out, cells)
	}
	return out, nil
}

// colLetter returns the sheet column letter for a zero-based index.
func colLetter(i int) string {
	return string(rune('A' + i))
}
