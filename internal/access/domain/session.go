package domain

import "time"

// Session is an identity session row backing a signed session token.
// Terminating a login revokes the row, which invalidates the token even
// though its signature still verifies.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// Live reports whether the session can still authenticate requests.
func (s Session) Live(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
