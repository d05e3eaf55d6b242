package domain

import (
	"fmt"
	"strings"
)

// EditSession is the staging state for one in-progress task edit. At
// most one is active at a time; starting a new one discards the prior
// draft. Drafts never touch the task collection until committed.
type EditSession struct {
	TaskID           string
	TitleDraft       string
	DescriptionDraft string
	stepsDraft       []string
}

// NewEditSession seeds a session from the task's current fields. The
// steps are defensively copied so draft mutations never alias the
// collection.
func NewEditSession(t Task) *EditSession {
	steps := make([]string, len(t.Steps))
	copy(steps, t.Steps)

	return &EditSession{
		TaskID:           t.ID,
		TitleDraft:       t.Title,
		DescriptionDraft: t.Description,
		stepsDraft:       steps,
	}
}

// Steps returns a copy of the staged step list.
func (e *EditSession) Steps() []string {
	steps := make([]string, len(e.stepsDraft))
	copy(steps, e.stepsDraft)
	return steps
}

// StepCount returns the number of staged steps, including blank ones.
func (e *EditSession) StepCount() int {
	return len(e.stepsDraft)
}

// AppendStep adds an empty step to the end of the draft.
func (e *EditSession) AppendStep() {
	e.stepsDraft = append(e.stepsDraft, "")
}

// SetStep replaces the step at index. Out-of-range indexes are a no-op
// and return a bounds error.
func (e *EditSession) SetStep(index int, value string) error {
	if index < 0 || index >= len(e.stepsDraft) {
		return fmt.Errorf("step index %d out of range [0,%d)", index, len(e.stepsDraft))
	}
	e.stepsDraft[index] = value
	return nil
}

// RemoveStep deletes the step at index. Out-of-range indexes are a
// no-op and return a bounds error.
func (e *EditSession) RemoveStep(index int) error {
	if index < 0 || index >= len(e.stepsDraft) {
		return fmt.Errorf("step index %d out of range [0,%d)", index, len(e.stepsDraft))
	}
	e.stepsDraft = append(e.stepsDraft[:index], e.stepsDraft[index+1:]...)
	return nil
}

// CleanSteps returns the staged steps with blank entries discarded.
// This is the value committed back to the store.
func (e *EditSession) CleanSteps() []string {
	result := make([]string, 0, len(e.stepsDraft))
	for _, step := range e.stepsDraft {
		if strings.TrimSpace(step) != "" {
			result = append(result, step)
		}
	}
	return result
}

// Validate checks the commit preconditions: title and description must
// be non-empty after trimming.
func (e *EditSession) Validate() error {
	if strings.TrimSpace(e.TitleDraft) == "" {
		return &ValidationError{Field: "title"}
	}
	if strings.TrimSpace(e.DescriptionDraft) == "" {
		return &ValidationError{Field: "description"}
	}
	return nil
}
