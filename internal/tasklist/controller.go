// Package tasklist owns the in-memory task collection and its view
// state: filter, expand, and the edit staging session. All writes go
// through the remote store, and every successful write re-fetches the
// full snapshot rather than patching locally.
package tasklist

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"taskdeck/internal/domain"
)

// Store is the remote task store surface the controller writes through.
type Store interface {
	List(ctx context.Context, scope domain.Scope) ([]domain.Task, error)
	Insert(ctx context.Context, scope domain.Scope, task domain.NewTask) error
	Update(ctx context.Context, scope domain.Scope, id string, patch domain.TaskPatch) error
	Delete(ctx context.Context, scope domain.Scope, id string) error
}

// Enricher expands a raw title and description before insert.
type Enricher interface {
	Enrich(ctx context.Context, title, description string) (domain.Enrichment, error)
}

// Controller mediates all reads and writes for one scope. Reads of the
// derived views happen on the render path while mutations run inside
// commands, so collection state is guarded.
type Controller struct {
	store    Store
	enricher Enricher
	scope    domain.Scope
	logger   *slog.Logger

	mu       sync.Mutex
	tasks    []domain.Task
	filter   domain.Filter
	expanded string
	edit     *domain.EditSession
}

// NewController creates a controller bound to one store scope.
func NewController(store Store, enricher Enricher, scope domain.Scope, logger *slog.Logger) *Controller {
	return &Controller{
		store:    store,
		enricher: enricher,
		scope:    scope,
		logger:   logger,
		filter:   domain.FilterAll,
	}
}

// Scope returns the store partition this controller operates on.
func (c *Controller) Scope() domain.Scope {
	return c.scope
}

// Load replaces the collection with the store's current snapshot. The
// prior collection is left untouched on failure.
func (c *Controller) Load(ctx context.Context) error {
	rows, err := c.store.List(ctx, c.scope)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.tasks = rows
	c.mu.Unlock()

	c.logger.Debug("collection refreshed", "table", c.scope.Table, "count", len(rows))
	return nil
}

// Create enriches the raw title and description, inserts the result,
// and refreshes the collection. An empty title fails before any remote
// call is made.
func (c *Controller) Create(ctx context.Context, rawTitle, rawDescription string) error {
	title := strings.TrimSpace(rawTitle)
	if title == "" {
		return &domain.ValidationError{Field: "title", Message: "title is required"}
	}

	enriched, err := c.enricher.Enrich(ctx, title, strings.TrimSpace(rawDescription))
	if err != nil {
		return err
	}

	err = c.store.Insert(ctx, c.scope, domain.NewTask{
		Title:       enriched.Title,
		Description: enriched.Description,
		Steps:       enriched.Steps,
	})
	if err != nil {
		return err
	}

	return c.Load(ctx)
}

// Complete marks the task done and refreshes the collection. Completion
// is one-way; there is no un-complete in this client.
func (c *Controller) Complete(ctx context.Context, id string) error {
	completed := true
	err := c.store.Update(ctx, c.scope, id, domain.TaskPatch{Completed: &completed})
	if err != nil {
		return err
	}
	return c.Load(ctx)
}

// Delete removes the task and refreshes the collection.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if err := c.store.Delete(ctx, c.scope, id); err != nil {
		return err
	}
	return c.Load(ctx)
}

// BeginEdit opens an edit session seeded from the task, discarding any
// prior uncommitted draft.
func (c *Controller) BeginEdit(task domain.Task) {
	c.mu.Lock()
	c.edit = domain.NewEditSession(task)
	c.mu.Unlock()
}

// Edit returns the active edit session, or nil when none is open. The
// edit overlay mutates the staging draft through it.
func (c *Controller) Edit() *domain.EditSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.edit
}

// CancelEdit discards the edit session unconditionally.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	c.edit = nil
	c.mu.Unlock()
}

// CommitEdit validates the draft, writes it to the store, and closes
// the session. The session stays open on any failure so the user can
// retry.
func (c *Controller) CommitEdit(ctx context.Context) error {
	c.mu.Lock()
	edit := c.edit
	c.mu.Unlock()
	if edit == nil {
		return &domain.ValidationError{Field: "edit", Message: "no edit in progress"}
	}

	if err := edit.Validate(); err != nil {
		return err
	}

	title := strings.TrimSpace(edit.TitleDraft)
	description := strings.TrimSpace(edit.DescriptionDraft)
	steps := edit.CleanSteps()
	err := c.store.Update(ctx, c.scope, edit.TaskID, domain.TaskPatch{
		Title:       &title,
		Description: &description,
		Steps:       &steps,
	})
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.edit == edit {
		c.edit = nil
	}
	c.mu.Unlock()

	return c.Load(ctx)
}

// SetFilter switches the rendered subset. Pure state transition.
func (c *Controller) SetFilter(f domain.Filter) {
	c.mu.Lock()
	c.filter = f
	c.mu.Unlock()
}

// Filter returns the active filter.
func (c *Controller) Filter() domain.Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// ToggleExpand expands the task's step list, collapsing whichever task
// was expanded before. Toggling the expanded task collapses it.
func (c *Controller) ToggleExpand(id string) {
	c.mu.Lock()
	if c.expanded == id {
		c.expanded = ""
	} else {
		c.expanded = id
	}
	c.mu.Unlock()
}

// IsExpanded reports whether the task's step list is expanded.
func (c *Controller) IsExpanded(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expanded == id
}

// Expanded returns the id of the expanded task, or "" if none is.
func (c *Controller) Expanded() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expanded
}

// Tasks returns the full unfiltered collection in store order.
func (c *Controller) Tasks() []domain.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// Filtered returns the rendered subset under the active filter,
// preserving store order among retained rows.
func (c *Controller) Filtered() []domain.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter.Apply(c.tasks)
}

// Counts computes the per-filter bucket counts from the unfiltered
// collection.
func (c *Controller) Counts() domain.Counts {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.CountTasks(c.tasks)
}
