package domain

// UserProfile is the authenticated user's profile as returned by the
// backend. It is immutable on the client; a new login replaces it wholesale.
type UserProfile struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Company     string `json:"company,omitempty"`
	Designation string `json:"designation,omitempty"`
}

// Session is the client's current identity. Invariant:
// IsAuthenticated == (Token != "").
type Session struct {
	User            *UserProfile
	Token           string
	IsAuthenticated bool
}

// NewSession builds an authenticated session from a login/signup result.
func NewSession(user *UserProfile, token string) Session {
	return Session{User: user, Token: token, IsAuthenticated: token != ""}
}
