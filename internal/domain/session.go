package domain

// Session is an authenticated user session issued by the session
// provider. A nil *Session means signed out.
type Session struct {
	AccessToken string
	UserID      string
	Email       string
}
