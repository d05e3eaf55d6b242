// Package chat turns free-text chat turns into task inserts. It layers
// a transcript and a processing guard over the same enrich+insert
// pathway the add-task form uses.
package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"taskdeck/internal/domain"
)

// State is the chat surface's finite state.
type State int

const (
	StateClosed State = iota
	StateIdle
	StateProcessing
)

// Inserter is the task creation pathway the adapter delegates to.
// *tasklist.Controller satisfies it.
type Inserter interface {
	Create(ctx context.Context, rawTitle, rawDescription string) error
}

const (
	greetingText   = "Hi! I can help you add tasks quickly. Just tell me what you want to do and I'll take care of the rest!"
	processingText = "Processing your task... Please wait."
	successText    = "Great! Your task has been added successfully. You can see it in your task list above."
	failureText    = "Sorry, there was an error adding your task. Please try again."
)

// Adapter is the conversational insert state machine. Submit and
// Complete run on the event loop; Process runs inside a command. The
// processing guard lives in Submit so a second submit can never start
// while one is in flight.
type Adapter struct {
	inserter Inserter
	logger   *slog.Logger

	mu         sync.Mutex
	state      State
	transcript domain.Transcript
	pending    string
}

// NewAdapter creates a closed adapter over the given insert pathway.
func NewAdapter(inserter Inserter, logger *slog.Logger) *Adapter {
	return &Adapter{inserter: inserter, logger: logger}
}

// State returns the current chat state.
func (a *Adapter) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Turns returns a copy of the transcript in order.
func (a *Adapter) Turns() []domain.Turn {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.transcript.Turns()
}

// Open shows the chat surface. Transitioning from closed resets the
// transcript to the seeded greeting.
func (a *Adapter) Open() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != StateClosed {
		return
	}
	a.transcript.Reset()
	a.transcript.Append(domain.SpeakerAssistant, greetingText)
	a.state = StateIdle
}

// Close hides the chat surface. The transcript persists until the next
// Open. Closing mid-flight keeps the processing state so the pending
// Complete still lands.
func (a *Adapter) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == StateIdle {
		a.state = StateClosed
	}
}

// Submit stages one chat message for processing. It appends the user
// turn and the transient processing turn, and reports whether the
// message was accepted. Blank input and submits while a previous one is
// still processing are rejected.
func (a *Adapter) Submit(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != StateIdle {
		return false
	}

	a.transcript.Append(domain.SpeakerUser, trimmed)
	a.transcript.Append(domain.SpeakerAssistant, processingText)
	a.pending = trimmed
	a.state = StateProcessing
	a.logger.Debug("chat submit accepted", "text", trimmed)
	return true
}

// Process runs the staged insert. Call only after Submit returned true;
// the result must be handed back through Complete.
func (a *Adapter) Process(ctx context.Context) error {
	a.mu.Lock()
	text := a.pending
	a.mu.Unlock()

	return a.inserter.Create(ctx, text, "")
}

// Complete records the outcome of a Process call and re-enables input.
// Clearing the processing state is unconditional; a stuck processing
// flag would block the surface forever.
func (a *Adapter) Complete(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err != nil {
		a.logger.Debug("chat insert failed", "error", err)
		a.transcript.Append(domain.SpeakerAssistant, failureText)
	} else {
		a.transcript.Append(domain.SpeakerAssistant, successText)
	}

	a.pending = ""
	if a.state == StateProcessing {
		a.state = StateIdle
	}
}
