// Package types contains shared types used across the application.
package types

// View represents the top-level surface currently on screen
type View int

const (
	ViewAuth View = iota
	ViewDashboard
	ViewWhatsApp
)

// String returns the string representation of the view
func (v View) String() string {
	switch v {
	case ViewAuth:
		return "AUTH"
	case ViewDashboard:
		return "DASHBOARD"
	case ViewWhatsApp:
		return "WHATSAPP"
	default:
		return "UNKNOWN"
	}
}
