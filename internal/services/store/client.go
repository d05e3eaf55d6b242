// Package store implements the remote task store client. The store is
// a hosted PostgREST-style row store; every operation is an
// authenticated HTTP request against one table.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"taskdeck/internal/domain"
)

// Doer executes HTTP requests. *http.Client satisfies it; tests inject
// their own.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// maxBody caps response reads to avoid unbounded memory on a
// misbehaving endpoint.
const maxBody = 2 << 20

// Client wraps the hosted task store REST surface.
type Client struct {
	baseURL string
	apiKey  string
	http    Doer
	logger  *slog.Logger
	token   func() string
}

// NewClient creates a new store client with dependency injection.
func NewClient(baseURL, apiKey string, doer Doer, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    doer,
		logger:  logger,
		token:   func() string { return "" },
	}
}

// SetTokenSource installs the access-token provider used for the
// Authorization header. A nil source clears it.
func (c *Client) SetTokenSource(fn func() string) {
	if fn == nil {
		fn = func() string { return "" }
	}
	c.token = fn
}

// List fetches the full snapshot for a scope, ordered by creation time
// descending. The store guarantees the order; callers must not re-sort.
func (c *Client) List(ctx context.Context, scope domain.Scope) ([]domain.Task, error) {
	c.logger.Debug("fetching tasks", "table", scope.Table)

	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "createdAt.desc")
	if !scope.Shared() {
		q.Set("userId", "eq."+scope.OwnerID)
	}

	body, status, err := c.do(ctx, http.MethodGet, c.tableURL(scope.Table)+"?"+q.Encode(), nil, "")
	if err != nil {
		return nil, &domain.StoreError{Op: "list", Table: scope.Table, Status: status, Err: err}
	}

	var tasks []domain.Task
	if err := json.Unmarshal(body, &tasks); err != nil {
		return nil, &domain.StoreError{Op: "list", Table: scope.Table, Err: fmt.Errorf("%w: %v", domain.ErrBadPayload, err)}
	}

	c.logger.Debug("fetched tasks", "table", scope.Table, "count", len(tasks))
	return tasks, nil
}

// Insert adds one row. For owned scopes the row is stamped with the
// scope's owner before sending.
func (c *Client) Insert(ctx context.Context, scope domain.Scope, task domain.NewTask) error {
	c.logger.Debug("inserting task", "table", scope.Table, "title", task.Title)

	if !scope.Shared() {
		task.OwnerID = scope.OwnerID
	}
	if task.Steps == nil {
		task.Steps = []string{}
	}

	// The store accepts a batch; we always send a single-element array.
	payload, err := json.Marshal([]domain.NewTask{task})
	if err != nil {
		return &domain.StoreError{Op: "insert", Table: scope.Table, Err: err}
	}

	_, status, err := c.do(ctx, http.MethodPost, c.tableURL(scope.Table), payload, "return=minimal")
	if err != nil {
		return &domain.StoreError{Op: "insert", Table: scope.Table, Status: status, Err: err}
	}

	c.logger.Debug("task inserted", "table", scope.Table)
	return nil
}

// Update applies a partial update to the row matching id.
func (c *Client) Update(ctx context.Context, scope domain.Scope, id string, patch domain.TaskPatch) error {
	c.logger.Debug("updating task", "table", scope.Table, "id", id)

	payload, err := json.Marshal(patch)
	if err != nil {
		return &domain.StoreError{Op: "update", Table: scope.Table, TaskID: id, Err: err}
	}

	u := c.tableURL(scope.Table) + "?id=eq." + url.QueryEscape(id)
	_, status, err := c.do(ctx, http.MethodPatch, u, payload, "return=minimal")
	if err != nil {
		return &domain.StoreError{Op: "update", Table: scope.Table, TaskID: id, Status: status, Err: err}
	}

	c.logger.Debug("task updated", "table", scope.Table, "id", id)
	return nil
}

// Delete removes the row matching id.
func (c *Client) Delete(ctx context.Context, scope domain.Scope, id string) error {
	c.logger.Debug("deleting task", "table", scope.Table, "id", id)

	u := c.tableURL(scope.Table) + "?id=eq." + url.QueryEscape(id)
	_, status, err := c.do(ctx, http.MethodDelete, u, nil, "")
	if err != nil {
		return &domain.StoreError{Op: "delete", Table: scope.Table, TaskID: id, Status: status, Err: err}
	}

	c.logger.Debug("task deleted", "table", scope.Table, "id", id)
	return nil
}

func (c *Client) tableURL(table string) string {
	return c.baseURL + "/rest/v1/" + url.PathEscape(table)
}

// do executes one request and returns the body and HTTP status. A
// non-2xx status is returned as an error alongside the status code.
func (c *Client) do(ctx context.Context, method, u string, body []byte, prefer string) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, 0, err
	}

	req.Header.Set("apikey", c.apiKey)
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, resp.StatusCode, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return data, resp.StatusCode, nil
}
