package identity

import (
	"context"
	"testing"
	"time"

	"github.com/counterline/posgate/internal/access/domain"
	"github.com/counterline/posgate/internal/access/store/drivers/sqlite"
	"github.com/counterline/posgate/pkg/cryptox"
	"github.com/counterline/posgate/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newProviderFixture(t *testing.T) (*LocalProvider, domain.User, *time.Time) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	hash, err := cryptox.HashPassword("correct horse battery")
	require.NoError(t, err)

	u := domain.User{
		ID:           idx.New().String(),
		Email:        "alice@example.com",
		DisplayName:  "Alice",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))

	signer, err := NewEphemeralSigner("posgate-test")
	require.NoError(t, err)

	now := time.Now()
	p := &LocalProvider{
		Store:  st,
		Signer: signer,
		Now:    func() time.Time { return now },
	}
	return p, u, &now
}

func TestVerifyCredentials(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a verifiable session token", func(t *testing.T) {
		p, u, _ := newProviderFixture(t)

		h, err := p.VerifyCredentials(ctx, u.Email, "correct horse battery")
		require.NoError(t, err)
		require.Equal(t, u.ID, h.UserID)
		require.NotEmpty(t, h.Token)

		principal, err := p.VerifySessionToken(ctx, h.Token)
		require.NoError(t, err)
		require.Equal(t, u.ID, principal.UserID)
		require.Equal(t, h.SessionID, principal.SessionID)
		require.Equal(t, string(domain.RoleAdmin), principal.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		p, u, _ := newProviderFixture(t)
		_, err := p.VerifyCredentials(ctx, u.Email, "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		p, _, _ := newProviderFixture(t)
		_, err := p.VerifyCredentials(ctx, "nobody@example.com", "whatever")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestVerifySessionToken(t *testing.T) {
	ctx := context.Background()

	t.Run("terminated sessions fail even with a valid signature", func(t *testing.T) {
		p, u, _ := newProviderFixture(t)

		h, err := p.VerifyCredentials(ctx, u.Email, "correct horse battery")
		require.NoError(t, err)
		require.NoError(t, p.Terminate(ctx, h.SessionID))

		_, err = p.VerifySessionToken(ctx, h.Token)
		require.ErrorIs(t, err, ErrSessionInvalid)
	})

	t.Run("expired sessions fail verification", func(t *testing.T) {
		p, u, now := newProviderFixture(t)

		h, err := p.VerifyCredentials(ctx, u.Email, "correct horse battery")
		require.NoError(t, err)

		*now = now.Add(DefaultSessionTTL + time.Minute)
		_, err = p.VerifySessionToken(ctx, h.Token)
		require.ErrorIs(t, err, ErrSessionInvalid)
	})

	t.Run("terminate is idempotent", func(t *testing.T) {
		p, u, _ := newProviderFixture(t)

		h, err := p.VerifyCredentials(ctx, u.Email, "correct horse battery")
		require.NoError(t, err)
		require.NoError(t, p.Terminate(ctx, h.SessionID))
		require.NoError(t, p.Terminate(ctx, h.SessionID))
	})

	t.Run("tampered tokens are rejected", func(t *testing.T) {
		p, u, _ := newProviderFixture(t)

		h, err := p.VerifyCredentials(ctx, u.Email, "correct horse battery")
		require.NoError(t, err)

		_, err = p.VerifySessionToken(ctx, h.Token+"x")
		require.Error(t, err)
	})

	t.Run("tokens from another signer are rejected", func(t *testing.T) {
		p, u, _ := newProviderFixture(t)

		other, err := NewEphemeralSigner("posgate-test")
		require.NoError(t, err)
		forged, err := other.Sign("sess-x", u.ID, "admin", time.Now(), time.Now().Add(time.Hour))
		require.NoError(t, err)

		_, err = p.VerifySessionToken(ctx, forged)
		require.Error(t, err)
	})
}

func TestLoadProfile(t *testing.T) {
	ctx := context.Background()
	p, u, _ := newProviderFixture(t)

	got, err := p.LoadProfile(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, got.Email)

	_, err = p.LoadProfile(ctx, "missing")
	require.ErrorIs(t, err, ErrProfileNotFound)
}

func TestPersistentSignerRoundTrip(t *testing.T) {
	file := t.TempDir() + "/signing.key"

	first, err := NewPersistentSigner("posgate-test", file)
	require.NoError(t, err)

	token, err := first.Sign("sess-1", "user-1", "seller", time.Now(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	// A second signer loading the same seed verifies tokens from the first.
	second, err := NewPersistentSigner("posgate-test", file)
	require.NoError(t, err)
	claims, err := second.verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
}
