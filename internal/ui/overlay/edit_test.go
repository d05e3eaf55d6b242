package overlay

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/domain"
)

func editFixture() (*domain.EditSession, *EditTaskOverlay) {
	task := domain.Task{
		ID:          "t-1",
		Title:       "Wash the car",
		Description: "Saturday morning",
		Steps:       []string{"Rinse", "Soap", "Dry"},
	}
	session := domain.NewEditSession(task)
	return session, NewEditTaskOverlay(session)
}

func TestNewEditTaskOverlay(t *testing.T) {
	session, overlay := editFixture()

	assert.Equal(t, "Edit Task", overlay.Title())
	assert.Equal(t, session.TitleDraft, overlay.title.Value())
	assert.Equal(t, session.DescriptionDraft, overlay.description.Value())
	require.Len(t, overlay.steps, 3)
	assert.Equal(t, "Rinse", overlay.steps[0].Value())
}

func TestEditTaskOverlaySyncsDraft(t *testing.T) {
	session, overlay := editFixture()

	model, _ := overlay.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'!'}})
	overlay = model.(*EditTaskOverlay)

	assert.Equal(t, "Wash the car!", session.TitleDraft)
}

func TestEditTaskOverlayAddStep(t *testing.T) {
	session, overlay := editFixture()

	model, _ := overlay.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	overlay = model.(*EditTaskOverlay)

	require.Len(t, overlay.steps, 4)
	assert.Equal(t, 4, session.StepCount())
	// Focus lands on the new step input
	assert.Equal(t, editFocusFirstStep+3, overlay.focusIndex)
}

func TestEditTaskOverlayRemoveStep(t *testing.T) {
	session, overlay := editFixture()

	// Focus the second step then remove it
	overlay.setFocus(editFocusFirstStep + 1)
	model, _ := overlay.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	overlay = model.(*EditTaskOverlay)

	require.Len(t, overlay.steps, 2)
	assert.Equal(t, []string{"Rinse", "Dry"}, session.Steps())
}

func TestEditTaskOverlayRemoveIgnoredOffSteps(t *testing.T) {
	session, overlay := editFixture()

	model, _ := overlay.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	overlay = model.(*EditTaskOverlay)

	assert.Len(t, overlay.steps, 3)
	assert.Equal(t, 3, session.StepCount())
}

func TestEditTaskOverlaySaveEmitsMsg(t *testing.T) {
	_, overlay := editFixture()

	_, cmd := overlay.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	_, ok := cmd().(EditSavedMsg)
	assert.True(t, ok, "expected EditSavedMsg")
}

func TestEditTaskOverlayEscCancels(t *testing.T) {
	_, overlay := editFixture()

	_, cmd := overlay.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	msgs := collectMsgs(t, cmd)
	var cancelled, closed bool
	for _, msg := range msgs {
		switch msg.(type) {
		case EditCancelledMsg:
			cancelled = true
		case CloseOverlayMsg:
			closed = true
		}
	}
	assert.True(t, cancelled, "expected EditCancelledMsg")
	assert.True(t, closed, "expected CloseOverlayMsg")
}

func TestEditTaskOverlayTabWrapsThroughSave(t *testing.T) {
	_, overlay := editFixture()

	// title -> description -> 3 steps -> save -> back to title
	for i := 0; i < 5; i++ {
		model, _ := overlay.Update(tea.KeyMsg{Type: tea.KeyTab})
		overlay = model.(*EditTaskOverlay)
	}
	assert.Equal(t, overlay.saveFocus(), overlay.focusIndex)

	model, _ := overlay.Update(tea.KeyMsg{Type: tea.KeyTab})
	overlay = model.(*EditTaskOverlay)
	assert.Equal(t, editFocusTitle, overlay.focusIndex)
}

func TestEditTaskOverlayView(t *testing.T) {
	_, overlay := editFixture()
	view := overlay.View()

	assert.True(t, strings.Contains(view, "Title:"))
	assert.True(t, strings.Contains(view, "Steps:"))
	assert.True(t, strings.Contains(view, "[ Save Changes ]"))
	assert.True(t, strings.Contains(view, "Rinse"))
}
