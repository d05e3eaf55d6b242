package tasklist

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/domain"
)

type fakeStore struct {
	rows []domain.Task

	listErr   error
	insertErr error
	updateErr error
	deleteErr error

	listCalls   int
	insertCalls int
	updateCalls int
	deleteCalls int

	lastScope  domain.Scope
	lastInsert domain.NewTask
	lastPatch  domain.TaskPatch
	lastID     string
}

func (f *fakeStore) List(_ context.Context, scope domain.Scope) ([]domain.Task, error) {
	f.listCalls++
	f.lastScope = scope
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Task, len(f.rows))
	copy(out, f.rows)
	return out, nil
}

func (f *fakeStore) Insert(_ context.Context, scope domain.Scope, task domain.NewTask) error {
	f.insertCalls++
	f.lastScope = scope
	f.lastInsert = task
	return f.insertErr
}

func (f *fakeStore) Update(_ context.Context, scope domain.Scope, id string, patch domain.TaskPatch) error {
	f.updateCalls++
	f.lastScope = scope
	f.lastID = id
	f.lastPatch = patch
	return f.updateErr
}

func (f *fakeStore) Delete(_ context.Context, scope domain.Scope, id string) error {
	f.deleteCalls++
	f.lastScope = scope
	f.lastID = id
	return f.deleteErr
}

type fakeEnricher struct {
	result domain.Enrichment
	err    error

	calls           int
	lastTitle       string
	lastDescription string
}

func (f *fakeEnricher) Enrich(_ context.Context, title, description string) (domain.Enrichment, error) {
	f.calls++
	f.lastTitle = title
	f.lastDescription = description
	return f.result, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newController(store *fakeStore, enricher *fakeEnricher) *Controller {
	return NewController(store, enricher, domain.OwnedScope("user-1"), testLogger())
}

func sampleTasks() []domain.Task {
	t3 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Task{
		{ID: "c", Title: "newest", CreatedAt: t3},
		{ID: "a", Title: "oldest", Completed: true, CreatedAt: t1},
		{ID: "b", Title: "middle", CreatedAt: t2},
	}
}

func TestController_Load(t *testing.T) {
	store := &fakeStore{rows: sampleTasks()}
	ctrl := newController(store, &fakeEnricher{})

	require.NoError(t, ctrl.Load(context.Background()))

	got := ctrl.Tasks()
	require.Len(t, got, 3)
	// Store order is authoritative, even when createdAt is out of order.
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
	assert.Equal(t, "b", got[2].ID)
}

func TestController_Load_FailureKeepsCollection(t *testing.T) {
	store := &fakeStore{rows: sampleTasks()}
	ctrl := newController(store, &fakeEnricher{})
	require.NoError(t, ctrl.Load(context.Background()))

	store.listErr = errors.New("store down")
	err := ctrl.Load(context.Background())

	require.Error(t, err)
	assert.Len(t, ctrl.Tasks(), 3)
}

func TestController_Create(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		enrichErr   error
		insertErr   error
		listErr     error
		wantErr     bool
		wantEnrich  int
		wantInsert  int
	}{
		{
			name:        "successful create",
			title:       "wash car",
			description: "",
			wantEnrich:  1,
			wantInsert:  1,
		},
		{
			name:       "empty title makes no remote calls",
			title:      "",
			wantErr:    true,
			wantEnrich: 0,
			wantInsert: 0,
		},
		{
			name:       "whitespace title makes no remote calls",
			title:      "   ",
			wantErr:    true,
			wantEnrich: 0,
			wantInsert: 0,
		},
		{
			name:       "enrichment failure skips insert",
			title:      "wash car",
			enrichErr:  &domain.EnrichError{Op: "enrich", Message: "empty response"},
			wantErr:    true,
			wantEnrich: 1,
			wantInsert: 0,
		},
		{
			name:       "insert failure surfaces",
			title:      "wash car",
			insertErr:  errors.New("store down"),
			wantErr:    true,
			wantEnrich: 1,
			wantInsert: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{insertErr: tt.insertErr, listErr: tt.listErr}
			enricher := &fakeEnricher{
				result: domain.Enrichment{Title: "Wash the car", Description: "Exterior wash and dry", Steps: []string{"Rinse", "Soap", "Dry"}},
				err:    tt.enrichErr,
			}
			ctrl := newController(store, enricher)

			err := ctrl.Create(context.Background(), tt.title, tt.description)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantEnrich, enricher.calls)
			assert.Equal(t, tt.wantInsert, store.insertCalls)
		})
	}
}

func TestController_Create_InsertsEnrichedRow(t *testing.T) {
	store := &fakeStore{}
	enricher := &fakeEnricher{
		result: domain.Enrichment{Title: "Wash the car", Description: "Exterior wash and dry", Steps: []string{"Rinse", "Soap", "Dry"}},
	}
	ctrl := newController(store, enricher)

	require.NoError(t, ctrl.Create(context.Background(), "  wash car  ", " quick "))

	assert.Equal(t, "wash car", enricher.lastTitle)
	assert.Equal(t, "quick", enricher.lastDescription)
	assert.Equal(t, "Wash the car", store.lastInsert.Title)
	assert.Equal(t, "Exterior wash and dry", store.lastInsert.Description)
	assert.Equal(t, []string{"Rinse", "Soap", "Dry"}, store.lastInsert.Steps)
	assert.False(t, store.lastInsert.Completed)
	assert.Equal(t, 1, store.listCalls, "create refreshes the collection")
}

func TestController_Create_FailureLeavesCollection(t *testing.T) {
	store := &fakeStore{rows: sampleTasks()}
	enricher := &fakeEnricher{err: &domain.EnrichError{Op: "enrich", Message: "bad shape"}}
	ctrl := newController(store, enricher)
	require.NoError(t, ctrl.Load(context.Background()))

	err := ctrl.Create(context.Background(), "wash car", "")

	require.Error(t, err)
	assert.Len(t, ctrl.Tasks(), 3)
}

func TestController_Complete(t *testing.T) {
	store := &fakeStore{rows: sampleTasks()}
	ctrl := newController(store, &fakeEnricher{})

	require.NoError(t, ctrl.Complete(context.Background(), "b"))

	assert.Equal(t, "b", store.lastID)
	require.NotNil(t, store.lastPatch.Completed)
	assert.True(t, *store.lastPatch.Completed)
	assert.Nil(t, store.lastPatch.Title)
	assert.Equal(t, 1, store.listCalls)
}

func TestController_Delete(t *testing.T) {
	store := &fakeStore{rows: sampleTasks()}
	ctrl := newController(store, &fakeEnricher{})

	require.NoError(t, ctrl.Delete(context.Background(), "a"))
	assert.Equal(t, "a", store.lastID)
	assert.Equal(t, 1, store.listCalls)

	store.deleteErr = errors.New("store down")
	require.Error(t, ctrl.Delete(context.Background(), "b"))
	assert.Equal(t, 1, store.listCalls, "no refresh after failed delete")
}

func TestController_CommitEdit(t *testing.T) {
	task := domain.Task{ID: "a", Title: "old", Description: "old desc", Steps: []string{"one"}}

	t.Run("persists cleaned draft and closes session", func(t *testing.T) {
		store := &fakeStore{}
		ctrl := newController(store, &fakeEnricher{})
		ctrl.BeginEdit(task)

		edit := ctrl.Edit()
		edit.TitleDraft = "new title"
		edit.DescriptionDraft = "new desc"
		edit.AppendStep()
		require.NoError(t, edit.SetStep(1, "  "))

		require.NoError(t, ctrl.CommitEdit(context.Background()))

		assert.Equal(t, "a", store.lastID)
		require.NotNil(t, store.lastPatch.Steps)
		assert.Equal(t, []string{"one"}, *store.lastPatch.Steps)
		assert.Nil(t, ctrl.Edit())
		assert.Equal(t, 1, store.listCalls)
	})

	t.Run("blank-only steps persist an empty list", func(t *testing.T) {
		store := &fakeStore{}
		ctrl := newController(store, &fakeEnricher{})
		ctrl.BeginEdit(domain.Task{ID: "a", Title: "t", Description: "d", Steps: []string{"", "  "}})

		require.NoError(t, ctrl.CommitEdit(context.Background()))

		require.NotNil(t, store.lastPatch.Steps)
		assert.Empty(t, *store.lastPatch.Steps)
	})

	t.Run("validation failure keeps session open without remote calls", func(t *testing.T) {
		store := &fakeStore{}
		ctrl := newController(store, &fakeEnricher{})
		ctrl.BeginEdit(task)
		ctrl.Edit().TitleDraft = "   "

		err := ctrl.CommitEdit(context.Background())

		require.Error(t, err)
		var valErr *domain.ValidationError
		assert.ErrorAs(t, err, &valErr)
		assert.NotNil(t, ctrl.Edit())
		assert.Equal(t, 0, store.updateCalls)
	})

	t.Run("store failure keeps session open for retry", func(t *testing.T) {
		store := &fakeStore{updateErr: errors.New("store down")}
		ctrl := newController(store, &fakeEnricher{})
		ctrl.BeginEdit(task)

		err := ctrl.CommitEdit(context.Background())

		require.Error(t, err)
		require.NotNil(t, ctrl.Edit())
		assert.Equal(t, "a", ctrl.Edit().TaskID)
	})

	t.Run("no edit in progress", func(t *testing.T) {
		ctrl := newController(&fakeStore{}, &fakeEnricher{})
		require.Error(t, ctrl.CommitEdit(context.Background()))
	})
}

func TestController_BeginEdit_DiscardsPriorDraft(t *testing.T) {
	ctrl := newController(&fakeStore{}, &fakeEnricher{})
	ctrl.BeginEdit(domain.Task{ID: "a", Title: "first"})
	ctrl.Edit().TitleDraft = "uncommitted"

	ctrl.BeginEdit(domain.Task{ID: "b", Title: "second"})

	assert.Equal(t, "b", ctrl.Edit().TaskID)
	assert.Equal(t, "second", ctrl.Edit().TitleDraft)
}

func TestController_CancelEdit(t *testing.T) {
	ctrl := newController(&fakeStore{}, &fakeEnricher{})
	ctrl.BeginEdit(domain.Task{ID: "a", Title: "t"})
	ctrl.CancelEdit()
	assert.Nil(t, ctrl.Edit())
}

func TestController_ToggleExpand(t *testing.T) {
	ctrl := newController(&fakeStore{}, &fakeEnricher{})

	ctrl.ToggleExpand("a")
	assert.True(t, ctrl.IsExpanded("a"))

	ctrl.ToggleExpand("a")
	assert.False(t, ctrl.IsExpanded("a"))

	ctrl.ToggleExpand("a")
	ctrl.ToggleExpand("b")
	assert.True(t, ctrl.IsExpanded("b"))
	assert.False(t, ctrl.IsExpanded("a"))
}

func TestController_FilteredAndCounts(t *testing.T) {
	store := &fakeStore{rows: sampleTasks()}
	ctrl := newController(store, &fakeEnricher{})
	require.NoError(t, ctrl.Load(context.Background()))

	counts := ctrl.Counts()
	assert.Equal(t, 3, counts.All)
	assert.Equal(t, 2, counts.Pending)
	assert.Equal(t, 1, counts.Completed)

	ctrl.SetFilter(domain.FilterPending)
	pending := ctrl.Filtered()
	require.Len(t, pending, 2)
	assert.Equal(t, "c", pending[0].ID)
	assert.Equal(t, "b", pending[1].ID)

	ctrl.SetFilter(domain.FilterCompleted)
	completed := ctrl.Filtered()
	require.Len(t, completed, 1)
	assert.Equal(t, "a", completed[0].ID)
}
