package domain

import "time"

// TokenStatus is the lifecycle state of a super token. Transitions are
// one-way: active -> used on redemption, active -> expired once the
// validity window has passed. used and expired are terminal.
type TokenStatus string

const (
	TokenActive  TokenStatus = "active"
	TokenUsed    TokenStatus = "used"
	TokenExpired TokenStatus = "expired"
)

// SuperTokenTTL is the validity window of a freshly minted token.
const SuperTokenTTL = 5 * time.Minute

// SuperToken is a short-lived, single-use 6-digit code minted by an
// administrator to step-up-authorize a sensitive in-store action.
type SuperToken struct {
	ID            string
	Code          string // 6-digit numeric string
	Status        TokenStatus
	CreatedByID   string
	CreatedByName string
	CreatedAt     time.Time
	ExpiresAt     time.Time
	UsedByID      string     // empty until redeemed
	UsedAt        *time.Time // nil until redeemed
}

// StatusAt derives the effective status at the given instant. A token past
// its expiry reads as expired even while storage still says active; expiry
// is a computed property, not a background sweep.
func (t SuperToken) StatusAt(now time.Time) TokenStatus {
	if t.Status == TokenActive && now.After(t.ExpiresAt) {
		return TokenExpired
	}
	return t.Status
}
