package toast

import (
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/types"
	"taskdeck/internal/ui/styles"
)

// Renderer handles rendering of toast notifications
type Renderer struct {
	styles *styles.Styles
}

// New creates a new Renderer with the given styles
func New(styles *styles.Styles) *Renderer {
	return &Renderer{
		styles: styles,
	}
}

// Render renders a stack of toasts, aligned to the right edge.
// Returns empty string if no toasts to display
func (r *Renderer) Render(toasts []types.Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}

	toastWidth := width / 3
	if toastWidth > 40 {
		toastWidth = 40
	}

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		style := r.styleForLevel(t.Level)
		rendered = append(rendered, style.Width(toastWidth).Render(t.Message))
	}

	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

// styleForLevel returns the appropriate style for a toast level
func (r *Renderer) styleForLevel(level types.ToastLevel) lipgloss.Style {
	switch level {
	case types.ToastSuccess:
		return r.styles.ToastSuccess
	case types.ToastWarning:
		return r.styles.ToastWarning
	case types.ToastError:
		return r.styles.ToastError
	default:
		return r.styles.ToastInfo
	}
}
