package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds all the UI styles
type Styles struct {
	// Layout
	Header    lipgloss.Style
	Subheader lipgloss.Style

	// Filter tabs
	FilterTab       lipgloss.Style
	FilterTabActive lipgloss.Style

	// Task rows
	Row            lipgloss.Style
	RowActive      lipgloss.Style
	RowCompleted   lipgloss.Style
	TaskTitle      lipgloss.Style
	TaskTitleDone  lipgloss.Style
	TaskDesc       lipgloss.Style
	CompletedBadge lipgloss.Style
	StepItem       lipgloss.Style
	StepHeader     lipgloss.Style
	EmptyList      lipgloss.Style

	// Forms
	FormLabel       lipgloss.Style
	FormLabelActive lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusMode lipgloss.Style
	StatusHint lipgloss.Style
	StatusInfo lipgloss.Style

	// Overlays
	Overlay          lipgloss.Style
	OverlayTitle     lipgloss.Style
	MenuItem         lipgloss.Style
	MenuItemActive   lipgloss.Style
	MenuItemDisabled lipgloss.Style
	MenuKey          lipgloss.Style
	Separator        lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style

	// Chat
	ChatUser      lipgloss.Style
	ChatAssistant lipgloss.Style
	ChatTimestamp lipgloss.Style
}

// New creates a new Styles instance with Catppuccin Macchiato theme
func New() *Styles {
	return &Styles{
		Header: lipgloss.NewStyle().
			Foreground(Lavender).
			Bold(true).
			Padding(0, 1),

		Subheader: lipgloss.NewStyle().
			Foreground(Subtext0).
			Padding(0, 1),

		FilterTab: lipgloss.NewStyle().
			Foreground(Subtext0).
			Padding(0, 2),

		FilterTabActive: lipgloss.NewStyle().
			Foreground(Base).
			Background(Blue).
			Bold(true).
			Padding(0, 2),

		Row: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface1).
			Padding(0, 1),

		RowActive: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Lavender).
			Padding(0, 1),

		RowCompleted: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface0).
			Padding(0, 1),

		TaskTitle: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true),

		TaskTitleDone: lipgloss.NewStyle().
			Foreground(Overlay0).
			Strikethrough(true),

		TaskDesc: lipgloss.NewStyle().
			Foreground(Subtext0),

		CompletedBadge: lipgloss.NewStyle().
			Foreground(Base).
			Background(Green).
			Padding(0, 1).
			Bold(true),

		StepItem: lipgloss.NewStyle().
			Foreground(Subtext1),

		StepHeader: lipgloss.NewStyle().
			Foreground(Teal).
			Bold(true),

		EmptyList: lipgloss.NewStyle().
			Foreground(Overlay0).
			Italic(true).
			Padding(1, 2),

		FormLabel: lipgloss.NewStyle().
			Foreground(Teal),

		FormLabelActive: lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true),

		StatusBar: lipgloss.NewStyle().
			Background(Surface0).
			Foreground(Subtext0).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Background(Blue).
			Foreground(Base).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(Subtext0),

		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface2).
			Background(Base).
			Padding(1, 2),

		OverlayTitle: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true).
			MarginBottom(1),

		MenuItem: lipgloss.NewStyle().
			Foreground(Text),

		MenuItemActive: lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true),

		MenuItemDisabled: lipgloss.NewStyle().
			Foreground(Overlay0),

		MenuKey: lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true),

		Separator: lipgloss.NewStyle().
			Foreground(Surface1),

		ToastInfo: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Blue).
			Foreground(Blue).
			Padding(0, 1),

		ToastSuccess: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Green).
			Foreground(Green).
			Padding(0, 1),

		ToastWarning: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Yellow).
			Foreground(Yellow).
			Padding(0, 1),

		ToastError: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Foreground(Red).
			Padding(0, 1),

		ChatUser: lipgloss.NewStyle().
			Foreground(Base).
			Background(Blue).
			Padding(0, 1),

		ChatAssistant: lipgloss.NewStyle().
			Foreground(Text).
			Background(Surface0).
			Padding(0, 1),

		ChatTimestamp: lipgloss.NewStyle().
			Foreground(Overlay0),
	}
}
