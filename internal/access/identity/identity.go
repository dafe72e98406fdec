// Package identity is the identity collaborator consumed by the login
// flow: credential verification, session issuance and termination, and
// profile loading. The access core only depends on the Provider contract;
// LocalProvider is the store-backed implementation this service ships.
package identity

import (
	"context"
	"errors"

	"github.com/counterline/posgate/internal/access/domain"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrProfileNotFound    = errors.New("user profile not found")
	ErrSessionInvalid     = errors.New("session is expired or revoked")
)

// Handle references an authenticated identity session. Token is the signed
// bearer token handed to the client; SessionID addresses the revocable
// server-side row.
type Handle struct {
	SessionID string
	UserID    string
	Token     string
}

// Provider is the identity collaborator contract.
type Provider interface {
	// VerifyCredentials checks email/password and establishes a session.
	// Fails with ErrInvalidCredentials; it does NOT check account status,
	// that belongs to the login orchestration.
	VerifyCredentials(ctx context.Context, email, password string) (Handle, error)

	// Terminate revokes the session, invalidating its token. Terminating
	// an already-revoked session is a no-op.
	Terminate(ctx context.Context, sessionID string) error

	// LoadProfile returns the user profile for an authenticated identity.
	// Fails with ErrProfileNotFound when the account row is gone.
	LoadProfile(ctx context.Context, userID string) (domain.User, error)
}
