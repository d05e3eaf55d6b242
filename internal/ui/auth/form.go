// Package auth renders the sign-in / sign-up form shown before a
// session exists.
package auth

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/ui/styles"
)

// SubmitMsg carries the credentials the user entered
type SubmitMsg struct {
	SignUp   bool
	Email    string
	Password string
}

// ValidationMsg reports a submit attempt with a missing field
type ValidationMsg struct {
	Field string
}

// Form is the two-tab credentials form. It validates nothing beyond
// presence; the session provider decides whether credentials are good.
type Form struct {
	email    textinput.Model
	password textinput.Model
	signUp   bool
	focus    int // 0 = email, 1 = password
	busy     bool
	styles   *styles.Styles
	width    int
}

// NewForm creates a form on the sign-in tab with the email field
// focused.
func NewForm() *Form {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Focus()
	email.CharLimit = 200
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 200
	password.Width = 40

	return &Form{
		email:    email,
		password: password,
		styles:   styles.New(),
		width:    60,
	}
}

// SetBusy marks an auth request as in flight; input and submits are
// ignored until it clears.
func (f *Form) SetBusy(busy bool) {
	f.busy = busy
}

// SetWidth sets the render width.
func (f *Form) SetWidth(width int) {
	f.width = width
}

// Init returns the cursor blink command.
func (f *Form) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key input. It returns a SubmitMsg command when the
// form is submitted with both fields present.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if f.busy {
		return nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "shift+tab":
			if f.focus == 0 {
				f.focus = 1
				f.email.Blur()
				f.password.Focus()
			} else {
				f.focus = 0
				f.password.Blur()
				f.email.Focus()
			}
			return nil

		case "left", "right", "ctrl+t":
			f.signUp = !f.signUp
			return nil

		case "enter":
			return f.submit()
		}
	}

	var cmd tea.Cmd
	if f.focus == 0 {
		f.email, cmd = f.email.Update(msg)
	} else {
		f.password, cmd = f.password.Update(msg)
	}
	return cmd
}

func (f *Form) submit() tea.Cmd {
	email := strings.TrimSpace(f.email.Value())
	password := f.password.Value()
	if email == "" {
		return func() tea.Msg { return ValidationMsg{Field: "email"} }
	}
	if password == "" {
		return func() tea.Msg { return ValidationMsg{Field: "password"} }
	}

	signUp := f.signUp
	return func() tea.Msg {
		return SubmitMsg{SignUp: signUp, Email: email, Password: password}
	}
}

// View renders the form centered in the given width.
func (f *Form) View() string {
	var b strings.Builder

	b.WriteString(f.styles.Header.Render("Taskdeck"))
	b.WriteString("\n\n")

	signIn := f.styles.FilterTab.Render("Sign In")
	signUp := f.styles.FilterTab.Render("Sign Up")
	if f.signUp {
		signUp = f.styles.FilterTabActive.Render("Sign Up")
	} else {
		signIn = f.styles.FilterTabActive.Render("Sign In")
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, signIn, " ", signUp))
	b.WriteString("\n\n")

	b.WriteString(f.label("Email", f.focus == 0))
	b.WriteString("\n")
	b.WriteString(f.email.View())
	b.WriteString("\n\n")

	b.WriteString(f.label("Password", f.focus == 1))
	b.WriteString("\n")
	b.WriteString(f.password.View())
	b.WriteString("\n\n")

	if f.busy {
		b.WriteString(f.styles.StatusHint.Render("Signing in..."))
	} else {
		b.WriteString(f.styles.StatusHint.Render("Enter: Submit • ←/→: Switch tab • Tab: Next field"))
	}

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Surface2).
		Padding(1, 3).
		Render(b.String())

	return lipgloss.PlaceHorizontal(f.width, lipgloss.Center, box)
}

func (f *Form) label(text string, focused bool) string {
	if focused {
		return f.styles.FormLabelActive.Render(text)
	}
	return f.styles.FormLabel.Render(text)
}
