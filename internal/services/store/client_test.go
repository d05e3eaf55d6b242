package store

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/domain"
)

// mockDoer implements Doer for testing
type mockDoer struct {
	status  int
	body    string
	err     error
	lastReq *http.Request
	reqBody string
	calls   int
}

func (m *mockDoer) Do(req *http.Request) (*http.Response, error) {
	m.calls++
	m.lastReq = req
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		m.reqBody = string(data)
	}
	if m.err != nil {
		return nil, m.err
	}
	status := m.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(m.body)),
	}, nil
}

func newTestClient(doer Doer) *Client {
	return NewClient("https://store.test", "anon-key", doer, slog.Default())
}

func TestClient_List(t *testing.T) {
	tests := []struct {
		name      string
		scope     domain.Scope
		status    int
		body      string
		doErr     error
		wantCount int
		wantErr   bool
	}{
		{
			name:  "owned scope with rows",
			scope: domain.OwnedScope("user-1"),
			body: `[
				{"id": "t-2", "title": "Second", "completed": false, "createdAt": "2025-06-01T12:00:00Z", "userId": "user-1"},
				{"id": "t-1", "title": "First", "completed": true, "createdAt": "2025-06-01T10:00:00Z", "userId": "user-1"}
			]`,
			wantCount: 2,
		},
		{
			name:      "shared scope empty",
			scope:     domain.SharedScope(),
			body:      `[]`,
			wantCount: 0,
		},
		{
			name:    "invalid json",
			scope:   domain.OwnedScope("user-1"),
			body:    `not json`,
			wantErr: true,
		},
		{
			name:    "server error",
			scope:   domain.OwnedScope("user-1"),
			status:  http.StatusInternalServerError,
			wantErr: true,
		},
		{
			name:    "transport error",
			scope:   domain.OwnedScope("user-1"),
			doErr:   errors.New("connection refused"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doer := &mockDoer{status: tt.status, body: tt.body, err: tt.doErr}
			client := newTestClient(doer)

			tasks, err := client.List(context.Background(), tt.scope)

			if tt.wantErr {
				require.Error(t, err)
				var storeErr *domain.StoreError
				assert.ErrorAs(t, err, &storeErr)
				assert.Equal(t, "list", storeErr.Op)
				return
			}

			require.NoError(t, err)
			assert.Len(t, tasks, tt.wantCount)
		})
	}
}

func TestClient_List_Query(t *testing.T) {
	t.Run("owned scope filters by owner", func(t *testing.T) {
		doer := &mockDoer{body: `[]`}
		client := newTestClient(doer)

		_, err := client.List(context.Background(), domain.OwnedScope("user-1"))
		require.NoError(t, err)

		q := doer.lastReq.URL.Query()
		assert.Equal(t, "eq.user-1", q.Get("userId"))
		assert.Equal(t, "createdAt.desc", q.Get("order"))
		assert.Contains(t, doer.lastReq.URL.Path, "/rest/v1/todos")
	})

	t.Run("shared scope has no owner filter", func(t *testing.T) {
		doer := &mockDoer{body: `[]`}
		client := newTestClient(doer)

		_, err := client.List(context.Background(), domain.SharedScope())
		require.NoError(t, err)

		q := doer.lastReq.URL.Query()
		assert.Empty(t, q.Get("userId"))
		assert.Contains(t, doer.lastReq.URL.Path, "whatsapp-todos")
	})
}

func TestClient_Insert(t *testing.T) {
	t.Run("stamps owner and wraps in array", func(t *testing.T) {
		doer := &mockDoer{status: http.StatusCreated}
		client := newTestClient(doer)

		err := client.Insert(context.Background(), domain.OwnedScope("user-1"), domain.NewTask{
			Title:       "Wash the car",
			Description: "Exterior wash and dry",
			Steps:       []string{"Rinse", "Soap", "Dry"},
		})
		require.NoError(t, err)

		var sent []domain.NewTask
		require.NoError(t, json.Unmarshal([]byte(doer.reqBody), &sent))
		require.Len(t, sent, 1)
		assert.Equal(t, "user-1", sent[0].OwnerID)
		assert.Equal(t, "Wash the car", sent[0].Title)
		assert.Equal(t, []string{"Rinse", "Soap", "Dry"}, sent[0].Steps)
		assert.False(t, sent[0].Completed)
		assert.Equal(t, "return=minimal", doer.lastReq.Header.Get("Prefer"))
	})

	t.Run("nil steps become empty array", func(t *testing.T) {
		doer := &mockDoer{status: http.StatusCreated}
		client := newTestClient(doer)

		err := client.Insert(context.Background(), domain.OwnedScope("user-1"), domain.NewTask{Title: "x", Description: "y"})
		require.NoError(t, err)
		assert.Contains(t, doer.reqBody, `"steps":[]`)
	})

	t.Run("server error", func(t *testing.T) {
		doer := &mockDoer{status: http.StatusConflict}
		client := newTestClient(doer)

		err := client.Insert(context.Background(), domain.OwnedScope("user-1"), domain.NewTask{Title: "x"})
		require.Error(t, err)

		var storeErr *domain.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "insert", storeErr.Op)
		assert.Equal(t, http.StatusConflict, storeErr.Status)
	})
}

func TestClient_Update(t *testing.T) {
	t.Run("patches by id", func(t *testing.T) {
		doer := &mockDoer{status: http.StatusNoContent}
		client := newTestClient(doer)

		completed := true
		err := client.Update(context.Background(), domain.OwnedScope("user-1"), "t-1", domain.TaskPatch{Completed: &completed})
		require.NoError(t, err)

		assert.Equal(t, http.MethodPatch, doer.lastReq.Method)
		assert.Equal(t, "eq.t-1", doer.lastReq.URL.Query().Get("id"))
		assert.JSONEq(t, `{"completed": true}`, doer.reqBody)
	})

	t.Run("error carries task id", func(t *testing.T) {
		doer := &mockDoer{err: errors.New("timeout")}
		client := newTestClient(doer)

		err := client.Update(context.Background(), domain.OwnedScope("user-1"), "t-9", domain.TaskPatch{})
		require.Error(t, err)

		var storeErr *domain.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "update", storeErr.Op)
		assert.Equal(t, "t-9", storeErr.TaskID)
		assert.Contains(t, err.Error(), "t-9")
	})
}

func TestClient_Delete(t *testing.T) {
	t.Run("deletes by id", func(t *testing.T) {
		doer := &mockDoer{status: http.StatusNoContent}
		client := newTestClient(doer)

		err := client.Delete(context.Background(), domain.SharedScope(), "t-1")
		require.NoError(t, err)

		assert.Equal(t, http.MethodDelete, doer.lastReq.Method)
		assert.Equal(t, "eq.t-1", doer.lastReq.URL.Query().Get("id"))
	})

	t.Run("server error", func(t *testing.T) {
		doer := &mockDoer{status: http.StatusNotFound}
		client := newTestClient(doer)

		err := client.Delete(context.Background(), domain.SharedScope(), "gone")
		require.Error(t, err)

		var storeErr *domain.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "delete", storeErr.Op)
	})
}

func TestClient_AuthHeaders(t *testing.T) {
	doer := &mockDoer{body: `[]`}
	client := newTestClient(doer)
	client.SetTokenSource(func() string { return "jwt-token" })

	_, err := client.List(context.Background(), domain.OwnedScope("user-1"))
	require.NoError(t, err)

	assert.Equal(t, "anon-key", doer.lastReq.Header.Get("apikey"))
	assert.Equal(t, "Bearer jwt-token", doer.lastReq.Header.Get("Authorization"))
}

func TestClient_NoTokenOmitsAuthorization(t *testing.T) {
	doer := &mockDoer{body: `[]`}
	client := newTestClient(doer)

	_, err := client.List(context.Background(), domain.SharedScope())
	require.NoError(t, err)

	assert.Empty(t, doer.lastReq.Header.Get("Authorization"))
}
