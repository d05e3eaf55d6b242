package app

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/domain"
	"taskdeck/internal/tasklist"
	"taskdeck/internal/types"
	"taskdeck/internal/ui/statusbar"
	"taskdeck/internal/ui/tasks"
	"taskdeck/internal/ui/toast"
)

// View renders the application
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.loading {
		return m.renderLoading()
	}

	var mainView string
	switch m.view {
	case types.ViewAuth:
		mainView = m.authForm.View()
	case types.ViewDashboard:
		mainView = m.renderTaskView(m.dashboard, false)
	case types.ViewWhatsApp:
		mainView = m.renderTaskView(m.whatsapp, true)
	}

	email := ""
	if m.session != nil {
		email = m.session.Email
	}
	sb := statusbar.New(m.view, email, m.width, m.styles)
	statusBarView := sb.Render()

	view := lipgloss.JoinVertical(lipgloss.Left, mainView, statusBarView)

	// Open overlay renders on top, centered
	if !m.overlayStack.IsEmpty() {
		current := m.overlayStack.Current()
		overlayView := current.View()

		overlayWidth, overlayHeight := current.Size()

		if title := current.Title(); title != "" {
			titleView := m.styles.OverlayTitle.Render(title)
			overlayView = lipgloss.JoinVertical(lipgloss.Left, titleView, overlayView)
		}
		overlayView = m.styles.Overlay.
			Width(overlayWidth).
			Height(overlayHeight).
			Render(overlayView)

		centeredOverlay := lipgloss.Place(
			m.width,
			m.height,
			lipgloss.Center,
			lipgloss.Center,
			overlayView,
		)

		view = lipgloss.Place(
			m.width,
			m.height,
			lipgloss.Left,
			lipgloss.Top,
			view,
		)

		view = lipgloss.JoinVertical(lipgloss.Left, view, centeredOverlay)
	}

	// Toasts in bottom-right corner
	if len(m.toasts) > 0 {
		toastRenderer := toast.New(m.styles)
		toastView := toastRenderer.Render(m.toasts, m.width)
		if toastView != "" {
			view = lipgloss.JoinVertical(lipgloss.Left, view, toastView)
		}
	}

	return view
}

// renderTaskView renders a task list view with its header and filter tabs
func (m Model) renderTaskView(ctrl *tasklist.Controller, truncate bool) string {
	if ctrl == nil {
		return ""
	}

	header := m.styles.Header.Render(m.viewTitle())

	counts := ctrl.Counts()
	tabs := m.renderFilterTabs(ctrl.Filter(), counts)

	filtered := ctrl.Filtered()
	lv := tasks.NewListView(filtered, m.width, truncate)
	lv.SetCursor(m.cursor[m.view])
	lv.SetExpanded(ctrl.Expanded())
	list := lv.Render()

	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, "", list)
}

func (m Model) viewTitle() string {
	if m.view == types.ViewWhatsApp {
		return "WhatsApp Tasks"
	}
	return "My Tasks"
}

// renderFilterTabs renders the all/pending/completed tabs with counts
// taken from the unfiltered collection.
func (m Model) renderFilterTabs(active domain.Filter, counts domain.Counts) string {
	render := func(f domain.Filter, label string, n int) string {
		text := fmt.Sprintf("%s (%d)", label, n)
		if f == active {
			return m.styles.FilterTabActive.Render(text)
		}
		return m.styles.FilterTab.Render(text)
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		render(domain.FilterAll, "All", counts.All),
		" ",
		render(domain.FilterPending, "Pending", counts.Pending),
		" ",
		render(domain.FilterCompleted, "Completed", counts.Completed),
	)
}

func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.spinner.View(),
		"Loading tasks...",
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}
