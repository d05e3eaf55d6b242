package domain

import "time"

// Speaker identifies who produced a chat turn.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Turn is one entry in a chat transcript.
type Turn struct {
	Speaker   Speaker
	Text      string
	Timestamp time.Time
}

// Transcript is the append-only, session-local log of chat turns. It is
// never persisted; it resets when the chat surface is reopened.
type Transcript struct {
	turns []Turn
}

// Append adds a turn with the current time.
func (t *Transcript) Append(speaker Speaker, text string) {
	t.turns = append(t.turns, Turn{
		Speaker:   speaker,
		Text:      text,
		Timestamp: time.Now(),
	})
}

// Turns returns a copy of the transcript in order.
func (t *Transcript) Turns() []Turn {
	turns := make([]Turn, len(t.turns))
	copy(turns, t.turns)
	return turns
}

// Len returns the number of turns.
func (t *Transcript) Len() int {
	return len(t.turns)
}

// Last returns the most recent turn, or nil when empty.
func (t *Transcript) Last() *Turn {
	if len(t.turns) == 0 {
		return nil
	}
	turn := t.turns[len(t.turns)-1]
	return &turn
}

// Reset discards all turns.
func (t *Transcript) Reset() {
	t.turns = nil
}
