package service

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/counterline/posgate/internal/access/domain"
	"github.com/counterline/posgate/internal/access/store"
	"github.com/counterline/posgate/internal/access/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newTokenFixture(t *testing.T) (store.Store, *SuperTokenService, *time.Time) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	now := time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)
	svc := &SuperTokenService{Store: st, Now: func() time.Time { return now }}
	return st, svc, &now
}

func TestSuperTokenGenerate(t *testing.T) {
	_, svc, now := newTokenFixture(t)
	ctx := context.Background()
	admin := domain.Actor{ID: "admin-1", Name: "Alice"}

	tok, err := svc.Generate(ctx, admin)
	require.NoError(t, err)

	require.Regexp(t, regexp.MustCompile(`^\d{6}$`), tok.Code)
	require.Equal(t, domain.TokenActive, tok.Status)
	require.Equal(t, admin.ID, tok.CreatedByID)
	require.Equal(t, admin.Name, tok.CreatedByName)
	require.Equal(t, now.Add(domain.SuperTokenTTL), tok.ExpiresAt)
}

func TestSuperTokenRedeem(t *testing.T) {
	ctx := context.Background()
	admin := domain.Actor{ID: "admin-1", Name: "Alice"}
	seller := domain.Actor{ID: "seller-1", Name: "Bob"}

	t.Run("redeems an active token exactly once", func(t *testing.T) {
		_, svc, _ := newTokenFixture(t)

		tok, err := svc.Generate(ctx, admin)
		require.NoError(t, err)

		redeemed, err := svc.Redeem(ctx, tok.Code, seller)
		require.NoError(t, err)
		require.Equal(t, domain.TokenUsed, redeemed.Status)
		require.Equal(t, seller.ID, redeemed.UsedByID)
		require.NotNil(t, redeemed.UsedAt)

		_, err = svc.Redeem(ctx, tok.Code, admin)
		require.ErrorIs(t, err, ErrTokenAlreadyUsed)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, svc, _ := newTokenFixture(t)
		_, err := svc.Redeem(ctx, "000000", seller)
		require.ErrorIs(t, err, ErrTokenNotFound)
	})

	t.Run("expiry is observed lazily and persisted", func(t *testing.T) {
		st, svc, now := newTokenFixture(t)

		tok, err := svc.Generate(ctx, admin)
		require.NoError(t, err)

		// Advance past the window; no background job has run.
		*now = now.Add(domain.SuperTokenTTL + time.Second)

		_, err = svc.Redeem(ctx, tok.Code, seller)
		require.ErrorIs(t, err, ErrTokenExpired)

		// The redeem attempt persisted the transition.
		stored, err := st.SuperTokens().GetSuperTokenByID(ctx, tok.ID)
		require.NoError(t, err)
		require.Equal(t, domain.TokenExpired, stored.Status)

		// And it stays expired for every later caller.
		_, err = svc.Redeem(ctx, tok.Code, admin)
		require.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("concurrent redemption has exactly one winner", func(t *testing.T) {
		_, svc, _ := newTokenFixture(t)

		tok, err := svc.Generate(ctx, admin)
		require.NoError(t, err)

		const callers = 8
		errs := make([]error, callers)
		var wg sync.WaitGroup
		for i := range callers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, errs[i] = svc.Redeem(ctx, tok.Code, domain.Actor{ID: "seller-1"})
			}()
		}
		wg.Wait()

		wins := 0
		for _, err := range errs {
			if err == nil {
				wins++
				continue
			}
			require.ErrorIs(t, err, ErrTokenAlreadyUsed)
		}
		require.Equal(t, 1, wins)
	})
}

func TestSuperTokenHistory(t *testing.T) {
	_, svc, now := newTokenFixture(t)
	ctx := context.Background()
	admin := domain.Actor{ID: "admin-1", Name: "Alice"}

	first, err := svc.Generate(ctx, admin)
	require.NoError(t, err)

	*now = now.Add(time.Minute)
	second, err := svc.Generate(ctx, admin)
	require.NoError(t, err)

	// Push the clock past the first token's window only.
	*now = first.ExpiresAt.Add(time.Second)

	tokens, err := svc.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, tokens, 2)

	// Newest first, with expiry derived at read time even though storage
	// still says active.
	require.Equal(t, second.ID, tokens[0].ID)
	require.Equal(t, domain.TokenActive, tokens[0].Status)
	require.Equal(t, first.ID, tokens[1].ID)
	require.Equal(t, domain.TokenExpired, tokens[1].Status)

	// An explicit limit below the total is honoured.
	tokens, err = svc.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	require.Equal(t, second.ID, tokens[0].ID)

	// Oversized limits are clamped rather than rejected.
	tokens, err = svc.History(ctx, MaxHistoryLimit+1)
	require.NoError(t, err)
	require.Len(t, tokens, 2)
}
