package statusbar

import (
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/types"
	"taskdeck/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	view   types.View
	email  string
	width  int
	styles *styles.Styles
}

// New creates a new StatusBar for the given view and width
func New(view types.View, email string, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		view:   view,
		email:  email,
		width:  width,
		styles: styles,
	}
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	viewBadge := sb.styles.StatusMode.Render(" " + sb.view.String() + " ")

	hints := GetHints(sb.view)
	hintsRendered := sb.styles.StatusHint.Render(hints)

	parts := []string{viewBadge}
	if hints != "" {
		parts = append(parts, sb.styles.StatusHint.Render(" │ "), hintsRendered)
	}
	if sb.email != "" {
		parts = append(parts, sb.styles.StatusHint.Render(" │ "), sb.styles.StatusInfo.Render(sb.email))
	}

	content := lipgloss.JoinHorizontal(lipgloss.Left, parts...)
	return sb.styles.StatusBar.Width(sb.width).Render(content)
}
