package overlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TaskSubmittedMsg is emitted when the add-task form is submitted. The
// title and description are raw; enrichment happens downstream.
type TaskSubmittedMsg struct {
	Title       string
	Description string
}

// AddTaskOverlay provides a form to create a new task
type AddTaskOverlay struct {
	title       textinput.Model
	description textarea.Model
	focusIndex  int
	styles      *Styles
}

const (
	addFocusTitle = iota
	addFocusDescription
	addFocusSubmit
	addFocusCount
)

// NewAddTaskOverlay creates a new task creation overlay
func NewAddTaskOverlay() *AddTaskOverlay {
	ti := textinput.New()
	ti.Placeholder = "What do you need to do?"
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60

	ta := textarea.New()
	ta.Placeholder = "Details (optional)..."
	ta.CharLimit = 2000
	ta.SetWidth(60)
	ta.SetHeight(4)

	return &AddTaskOverlay{
		title:       ti,
		description: ta,
		styles:      New(),
	}
}

// Init initializes the overlay
func (a *AddTaskOverlay) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (a *AddTaskOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return a, func() tea.Msg { return CloseOverlayMsg{} }

		case "ctrl+s":
			return a, a.submit()

		case "tab", "shift+tab":
			if msg.String() == "tab" {
				a.focusIndex = (a.focusIndex + 1) % addFocusCount
			} else {
				a.focusIndex = (a.focusIndex - 1 + addFocusCount) % addFocusCount
			}

			if a.focusIndex == addFocusTitle {
				a.title.Focus()
				a.description.Blur()
			} else if a.focusIndex == addFocusDescription {
				a.title.Blur()
				a.description.Focus()
			} else {
				a.title.Blur()
				a.description.Blur()
			}

			return a, nil

		case "enter":
			if a.focusIndex == addFocusSubmit {
				return a, a.submit()
			}
			if a.focusIndex == addFocusTitle {
				// Enter from the title submits directly, matching the
				// web form's behavior.
				return a, a.submit()
			}
		}
	}

	var cmd tea.Cmd
	if a.focusIndex == addFocusTitle {
		a.title, cmd = a.title.Update(msg)
	} else if a.focusIndex == addFocusDescription {
		a.description, cmd = a.description.Update(msg)
	}

	return a, cmd
}

// View renders the form
func (a *AddTaskOverlay) View() string {
	var b strings.Builder

	b.WriteString(a.label("Title:", a.focusIndex == addFocusTitle))
	b.WriteString("  ")
	b.WriteString(a.title.View())
	b.WriteString("\n\n")

	b.WriteString(a.label("Description:", a.focusIndex == addFocusDescription))
	b.WriteString("\n")
	b.WriteString(a.description.View())
	b.WriteString("\n\n")

	b.WriteString(a.styles.Separator.Render(strings.Repeat("─", 60)))
	b.WriteString("\n\n")

	submitStyle := a.styles.MenuItem
	if a.focusIndex == addFocusSubmit {
		submitStyle = a.styles.MenuItemActive
	}
	b.WriteString(submitStyle.Render("[ Add Task ]"))
	b.WriteString("\n\n")

	hints := []string{
		a.styles.MenuKey.Render("Tab") + " " + a.styles.Footer.Render("Switch fields"),
		a.styles.MenuKey.Render("Ctrl+S") + " " + a.styles.Footer.Render("Submit"),
		a.styles.MenuKey.Render("Esc") + " " + a.styles.Footer.Render("Cancel"),
	}
	b.WriteString(a.styles.Footer.Render(strings.Join(hints, " • ")))

	return b.String()
}

func (a *AddTaskOverlay) label(text string, focused bool) string {
	if focused {
		return a.styles.MenuItemActive.Render(text)
	}
	return a.styles.MenuItem.Render(text)
}

// submit emits the form values and closes the overlay
func (a *AddTaskOverlay) submit() tea.Cmd {
	title := strings.TrimSpace(a.title.Value())
	if title == "" {
		return nil
	}

	return tea.Batch(
		func() tea.Msg {
			return TaskSubmittedMsg{
				Title:       title,
				Description: strings.TrimSpace(a.description.Value()),
			}
		},
		func() tea.Msg { return CloseOverlayMsg{} },
	)
}

// Title returns the overlay title
func (a *AddTaskOverlay) Title() string {
	return "Add Task"
}

// Size returns the overlay dimensions
func (a *AddTaskOverlay) Size() (width, height int) {
	return 70, 16
}
