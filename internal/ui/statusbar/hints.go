package statusbar

import "taskdeck/internal/types"

// GetHints returns the keybinding hints for the given view
func GetHints(view types.View) string {
	switch view {
	case types.ViewAuth:
		return "Enter: submit  ←/→: sign in/up  q: quit"
	case types.ViewDashboard:
		return "a: add  e: edit  x: done  c: chat  1/2/3: filter  Tab: whatsapp  ?: help"
	case types.ViewWhatsApp:
		return "j/k: move  Enter: details  x: done  d: delete  Tab: dashboard  ?: help"
	default:
		return ""
	}
}
