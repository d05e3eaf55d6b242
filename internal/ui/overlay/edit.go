package overlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/domain"
)

// EditSavedMsg is emitted when the user asks to save the edit draft.
// The overlay stays open; it is closed once the commit succeeds.
type EditSavedMsg struct{}

// EditCancelledMsg is emitted when the edit is abandoned
type EditCancelledMsg struct{}

// EditTaskOverlay provides a form over an edit staging draft: title,
// description, and a mutable step list.
type EditTaskOverlay struct {
	session     *domain.EditSession
	title       textinput.Model
	description textarea.Model
	steps       []textinput.Model
	focusIndex  int
	styles      *Styles
}

// Focus positions: 0 = title, 1 = description, 2..n+1 = steps,
// n+2 = save button.
const (
	editFocusTitle = iota
	editFocusDescription
	editFocusFirstStep
)

// NewEditTaskOverlay creates an edit overlay seeded from the session's
// current draft.
func NewEditTaskOverlay(session *domain.EditSession) *EditTaskOverlay {
	ti := textinput.New()
	ti.SetValue(session.TitleDraft)
	ti.Placeholder = "Task title..."
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60

	ta := textarea.New()
	ta.SetValue(session.DescriptionDraft)
	ta.Placeholder = "Task description..."
	ta.CharLimit = 2000
	ta.SetWidth(60)
	ta.SetHeight(4)

	o := &EditTaskOverlay{
		session:     session,
		title:       ti,
		description: ta,
		styles:      New(),
	}
	for _, step := range session.Steps() {
		o.steps = append(o.steps, newStepInput(step))
	}
	return o
}

func newStepInput(value string) textinput.Model {
	si := textinput.New()
	si.SetValue(value)
	si.Placeholder = "Step..."
	si.CharLimit = 200
	si.Width = 54
	return si
}

// Init initializes the overlay
func (o *EditTaskOverlay) Init() tea.Cmd {
	return textinput.Blink
}

func (o *EditTaskOverlay) saveFocus() int {
	return editFocusFirstStep + len(o.steps)
}

// Update handles messages
func (o *EditTaskOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return o, tea.Batch(
				func() tea.Msg { return EditCancelledMsg{} },
				func() tea.Msg { return CloseOverlayMsg{} },
			)

		case "ctrl+s":
			return o, o.save()

		case "ctrl+n":
			o.session.AppendStep()
			o.steps = append(o.steps, newStepInput(""))
			o.setFocus(editFocusFirstStep + len(o.steps) - 1)
			return o, nil

		case "ctrl+d":
			if i, ok := o.focusedStep(); ok {
				if err := o.session.RemoveStep(i); err == nil {
					o.steps = append(o.steps[:i], o.steps[i+1:]...)
					if o.focusIndex > editFocusDescription+len(o.steps) {
						o.setFocus(editFocusDescription + len(o.steps))
					} else {
						o.setFocus(o.focusIndex)
					}
				}
			}
			return o, nil

		case "tab":
			o.setFocus((o.focusIndex + 1) % (o.saveFocus() + 1))
			return o, nil

		case "shift+tab":
			o.setFocus((o.focusIndex + o.saveFocus()) % (o.saveFocus() + 1))
			return o, nil

		case "enter":
			if o.focusIndex == o.saveFocus() {
				return o, o.save()
			}
		}
	}

	cmd := o.updateFocused(msg)
	o.syncDraft()
	return o, cmd
}

func (o *EditTaskOverlay) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case o.focusIndex == editFocusTitle:
		o.title, cmd = o.title.Update(msg)
	case o.focusIndex == editFocusDescription:
		o.description, cmd = o.description.Update(msg)
	default:
		if i, ok := o.focusedStep(); ok {
			o.steps[i], cmd = o.steps[i].Update(msg)
		}
	}
	return cmd
}

func (o *EditTaskOverlay) focusedStep() (int, bool) {
	i := o.focusIndex - editFocusFirstStep
	if i >= 0 && i < len(o.steps) {
		return i, true
	}
	return 0, false
}

func (o *EditTaskOverlay) setFocus(index int) {
	o.focusIndex = index
	o.title.Blur()
	o.description.Blur()
	for i := range o.steps {
		o.steps[i].Blur()
	}

	switch {
	case index == editFocusTitle:
		o.title.Focus()
	case index == editFocusDescription:
		o.description.Focus()
	default:
		if i, ok := o.focusedStep(); ok {
			o.steps[i].Focus()
		}
	}
}

// syncDraft copies the field values into the staging session so the
// draft is always current when the save command reads it.
func (o *EditTaskOverlay) syncDraft() {
	o.session.TitleDraft = o.title.Value()
	o.session.DescriptionDraft = o.description.Value()
	for i := range o.steps {
		// The input list mirrors the draft, so indexes always match.
		_ = o.session.SetStep(i, o.steps[i].Value())
	}
}

func (o *EditTaskOverlay) save() tea.Cmd {
	o.syncDraft()
	return func() tea.Msg { return EditSavedMsg{} }
}

// View renders the form
func (o *EditTaskOverlay) View() string {
	var b strings.Builder

	b.WriteString(o.label("Title:", o.focusIndex == editFocusTitle))
	b.WriteString("  ")
	b.WriteString(o.title.View())
	b.WriteString("\n\n")

	b.WriteString(o.label("Description:", o.focusIndex == editFocusDescription))
	b.WriteString("\n")
	b.WriteString(o.description.View())
	b.WriteString("\n\n")

	b.WriteString(o.label("Steps:", false))
	b.WriteString("\n")
	if len(o.steps) == 0 {
		b.WriteString(o.styles.MenuItemDisabled.Render("  (none, Ctrl+N to add)"))
		b.WriteString("\n")
	}
	for i := range o.steps {
		focused := o.focusIndex == editFocusFirstStep+i
		b.WriteString(o.label(fmt.Sprintf("  %d.", i+1), focused))
		b.WriteString(" ")
		b.WriteString(o.steps[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(o.styles.Separator.Render(strings.Repeat("─", 60)))
	b.WriteString("\n\n")

	saveStyle := o.styles.MenuItem
	if o.focusIndex == o.saveFocus() {
		saveStyle = o.styles.MenuItemActive
	}
	b.WriteString(saveStyle.Render("[ Save Changes ]"))
	b.WriteString("\n\n")

	hints := []string{
		o.styles.MenuKey.Render("Tab") + " " + o.styles.Footer.Render("Switch fields"),
		o.styles.MenuKey.Render("Ctrl+N") + " " + o.styles.Footer.Render("Add step"),
		o.styles.MenuKey.Render("Ctrl+D") + " " + o.styles.Footer.Render("Remove step"),
		o.styles.MenuKey.Render("Ctrl+S") + " " + o.styles.Footer.Render("Save"),
		o.styles.MenuKey.Render("Esc") + " " + o.styles.Footer.Render("Cancel"),
	}
	b.WriteString(o.styles.Footer.Render(strings.Join(hints, " • ")))

	return b.String()
}

func (o *EditTaskOverlay) label(text string, focused bool) string {
	if focused {
		return o.styles.MenuItemActive.Render(text)
	}
	return o.styles.MenuItem.Render(text)
}

// Title returns the overlay title
func (o *EditTaskOverlay) Title() string {
	return "Edit Task"
}

// Size returns the overlay dimensions
func (o *EditTaskOverlay) Size() (width, height int) {
	return 70, 18 + len(o.steps)
}
