package overlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/chat"
	"taskdeck/internal/domain"
	"taskdeck/internal/ui/styles"
)

// ChatSubmitMsg carries one chat message the user sent
type ChatSubmitMsg struct {
	Text string
}

// ChatOverlay renders the conversational add-task widget: the
// transcript above a single-line input. The adapter owns the transcript
// and the processing state; the overlay only reads them.
type ChatOverlay struct {
	adapter *chat.Adapter
	input   textinput.Model
	styles  *Styles
	width   int
}

// NewChatOverlay creates the chat widget over the given adapter.
func NewChatOverlay(adapter *chat.Adapter) *ChatOverlay {
	ti := textinput.New()
	ti.Placeholder = "Type a task..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 50

	return &ChatOverlay{
		adapter: adapter,
		input:   ti,
		styles:  New(),
		width:   56,
	}
}

// Init initializes the overlay
func (c *ChatOverlay) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (c *ChatOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return c, func() tea.Msg { return CloseOverlayMsg{} }

		case "enter":
			text := strings.TrimSpace(c.input.Value())
			if text == "" || c.adapter.State() == chat.StateProcessing {
				return c, nil
			}
			c.input.SetValue("")
			return c, func() tea.Msg { return ChatSubmitMsg{Text: text} }
		}
	}

	// Input stays read-only while an insert is in flight.
	if c.adapter.State() == chat.StateProcessing {
		return c, nil
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// View renders the transcript and input
func (c *ChatOverlay) View() string {
	theme := styles.New()
	var b strings.Builder

	for _, turn := range c.adapter.Turns() {
		b.WriteString(c.renderTurn(theme, turn))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(c.input.View())
	b.WriteString("\n")

	hint := "Enter: Send • Esc: Close"
	if c.adapter.State() == chat.StateProcessing {
		hint = "Working on it..."
	}
	b.WriteString(c.styles.Footer.Render(hint))

	return b.String()
}

func (c *ChatOverlay) renderTurn(theme *styles.Styles, turn domain.Turn) string {
	text := wrapText(turn.Text, c.width-8)
	stamp := theme.ChatTimestamp.Render(turn.Timestamp.Format("15:04"))

	if turn.Speaker == domain.SpeakerUser {
		bubble := theme.ChatUser.Render(text)
		return lipgloss.NewStyle().Width(c.width).Align(lipgloss.Right).Render(bubble + " " + stamp)
	}
	return theme.ChatAssistant.Render(text) + " " + stamp
}

// wrapText breaks long lines at word boundaries to fit the bubble.
func wrapText(text string, width int) string {
	if width < 10 {
		width = 10
	}

	words := strings.Fields(text)
	var lines []string
	var line string
	for _, word := range words {
		if line == "" {
			line = word
		} else if len(line)+1+len(word) <= width {
			line += " " + word
		} else {
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// Title returns the overlay title
func (c *ChatOverlay) Title() string {
	return "Quick Add"
}

// Size returns the overlay dimensions
func (c *ChatOverlay) Size() (width, height int) {
	return c.width + 6, 20
}
