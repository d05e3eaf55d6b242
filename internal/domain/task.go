package domain

import "time"

// Task represents one todo row as stored by the remote task store.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Steps       []string  `json:"steps"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	OwnerID     string    `json:"userId,omitempty"`
}

// NewTask holds the fields of a task about to be inserted. The store
// assigns ID and CreatedAt.
type NewTask struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Steps       []string `json:"steps"`
	Completed   bool     `json:"completed"`
	OwnerID     string   `json:"userId,omitempty"`
}

// TaskPatch is a partial update. Nil fields are left untouched by the
// store.
type TaskPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Steps       *[]string `json:"steps,omitempty"`
	Completed   *bool     `json:"completed,omitempty"`
}

// Scope identifies which store partition a view operates on: the
// signed-in user's own table, or the shared WhatsApp table with no
// owner column.
type Scope struct {
	Table   string
	OwnerID string // empty for the shared scope
}

// Shared reports whether the scope has no owner partition.
func (s Scope) Shared() bool {
	return s.OwnerID == ""
}

// OwnedScope returns the per-user todos scope.
func OwnedScope(ownerID string) Scope {
	return Scope{Table: "todos", OwnerID: ownerID}
}

// SharedScope returns the WhatsApp todos scope.
func SharedScope() Scope {
	return Scope{Table: "whatsapp-todos"}
}

// Enrichment is the validated response of the enrichment service for
// one raw title/description pair.
type Enrichment struct {
	Title       string
	Description string
	Steps       []string
}
