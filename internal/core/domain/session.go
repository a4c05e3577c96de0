package domain

import "time"

// Session is the verified identity attached to a request.
type Session struct {
	ID        string
	Username  string
	Role      Role
	ExpiresAt time.Time
}

// HasRole reports whether the session belongs to a user with role r.
// A nil session has no role.
func (s *Session) HasRole(r Role) bool {
	return s != nil && s.Role == r
}
