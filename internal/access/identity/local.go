package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/counterline/posgate/internal/access/domain"
	"github.com/counterline/posgate/internal/access/store"
	"github.com/counterline/posgate/pkg/cryptox"
	"github.com/counterline/posgate/pkg/httpx"
	"github.com/counterline/posgate/pkg/idx"
)

const DefaultSessionTTL = 12 * time.Hour

// LocalProvider verifies credentials against the users table and issues
// EdDSA-signed tokens backed by revocable session rows. Sign-out revokes
// the row, so a terminated session fails verification even though the
// token signature remains valid.
type LocalProvider struct {
	Store      store.Store
	Signer     *SessionSigner
	SessionTTL time.Duration

	// Now is the injectable clock; defaults to time.Now.
	Now func() time.Time
}

func (p *LocalProvider) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *LocalProvider) ttl() time.Duration {
	if p.SessionTTL > 0 {
		return p.SessionTTL
	}
	return DefaultSessionTTL
}

func (p *LocalProvider) VerifyCredentials(ctx context.Context, email, password string) (Handle, error) {
	u, err := p.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn roughly the same time as a real verification so a
			// missing account is not distinguishable by latency.
			_, _ = cryptox.HashPassword(password)
			return Handle{}, ErrInvalidCredentials
		}
		return Handle{}, fmt.Errorf("load user by email: %w", err)
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		return Handle{}, ErrInvalidCredentials
	}

	now := p.now()
	sess := domain.Session{
		ID:        idx.New().String(),
		UserID:    u.ID,
		ExpiresAt: now.Add(p.ttl()),
		CreatedAt: now,
	}
	if err := p.Store.Sessions().CreateSession(ctx, sess); err != nil {
		return Handle{}, fmt.Errorf("create session: %w", err)
	}

	token, err := p.Signer.Sign(sess.ID, u.ID, string(u.Role), now, sess.ExpiresAt)
	if err != nil {
		return Handle{}, fmt.Errorf("sign session token: %w", err)
	}

	return Handle{SessionID: sess.ID, UserID: u.ID, Token: token}, nil
}

func (p *LocalProvider) Terminate(ctx context.Context, sessionID string) error {
	return p.Store.Sessions().RevokeSession(ctx, sessionID, p.now())
}

func (p *LocalProvider) LoadProfile(ctx context.Context, userID string) (domain.User, error) {
	u, err := p.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrProfileNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}

// VerifySessionToken implements httpx.SessionVerifier: signature first,
// then the revocable session row.
func (p *LocalProvider) VerifySessionToken(ctx context.Context, raw string) (httpx.Principal, error) {
	claims, err := p.Signer.verify(raw)
	if err != nil {
		return httpx.Principal{}, err
	}

	sess, err := p.Store.Sessions().GetSessionByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return httpx.Principal{}, ErrSessionInvalid
		}
		return httpx.Principal{}, err
	}
	if !sess.Live(p.now()) {
		return httpx.Principal{}, ErrSessionInvalid
	}

	return httpx.Principal{
		UserID:    claims.Subject,
		SessionID: claims.ID,
		Role:      claims.Role,
	}, nil
}
