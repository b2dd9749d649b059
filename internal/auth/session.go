package auth

import "github.com/roach88/bizdesk/internal/model"

// Session is the logged-in user's cached identity and permissions.
type Session struct {
	ID          string        `json:"id"`
	Username    string        `json:"username"`
	FullName    string        `json:"fullName"`
	Email       string        `json:"email"`
	Profile     model.Profile `json:"profile"`
	Permissions Permissions   `json:"permissions"`
}

// NewSession materializes a session for u.
func NewSession(u model.User) Session {
	return Session{
		ID:          u.ID,
		Username:    u.Username,
		FullName:    u.FullName,
		Email:       u.Email,
		Profile:     u.Profile,
		Permissions: ForProfile(u.Profile),
	}
}

// Has checks a capability against the session's profile. The matrix is
// derived again rather than trusted from a cached snapshot.
func (s *Session) Has(capability string) bool {
	if s == nil {
		return false
	}
	return ForProfile(s.Profile).Has(capability)
}
