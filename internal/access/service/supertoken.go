package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/counterline/posgate/internal/access/domain"
	"github.com/counterline/posgate/internal/access/store"
	"github.com/counterline/posgate/pkg/idx"
	"github.com/counterline/posgate/pkg/slogx"
)

var (
	ErrTokenNotFound    = errors.New("super token not found")
	ErrTokenAlreadyUsed = errors.New("super token has already been used")
	ErrTokenExpired     = errors.New("super token has expired")

	// ErrCodeSpaceBusy means every generated code collided with a
	// currently-active token. With a 6-digit space this only happens
	// under pathological load.
	ErrCodeSpaceBusy = errors.New("could not allocate an unused token code")
)

const mintAttempts = 5

// History limits: the default applies when the caller does not say, the
// max bounds what a single listing can pull regardless.
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

// SuperTokenService mints, redeems, and lists short-lived single-use
// authorization codes. Whether the caller is allowed to mint is decided
// by the surrounding authorization layer, not here. Expiry is lazy: it is
// derived from expires_at on every read and persisted only when a redeem
// first observes it; there is no background sweep.
type SuperTokenService struct {
	Store store.Store

	// Now is the injectable clock; defaults to time.Now.
	Now func() time.Time
}

func (s *SuperTokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Generate mints a new active token for the actor. Codes are drawn
// uniformly from the 6-digit space; uniqueness among active tokens is
// enforced by the store's partial unique index, with a bounded retry on
// collision.
func (s *SuperTokenService) Generate(ctx context.Context, actor domain.Actor) (domain.SuperToken, error) {
	log := slogx.FromContext(ctx)
	now := s.now()

	for range mintAttempts {
		code, err := newTokenCode()
		if err != nil {
			return domain.SuperToken{}, err
		}

		t := domain.SuperToken{
			ID:            idx.New().String(),
			Code:          code,
			Status:        domain.TokenActive,
			CreatedByID:   actor.ID,
			CreatedByName: actor.Name,
			CreatedAt:     now,
			ExpiresAt:     now.Add(domain.SuperTokenTTL),
		}

		err = s.Store.SuperTokens().CreateSuperToken(ctx, t)
		if errors.Is(err, store.ErrAlreadyExists) {
			// Another active token holds this code; draw again.
			continue
		}
		if err != nil {
			return domain.SuperToken{}, err
		}

		log.Info("super token minted",
			slog.String("token_id", t.ID),
			slog.String("created_by", actor.ID),
			slog.Time("expires_at", t.ExpiresAt),
		)
		return t, nil
	}

	return domain.SuperToken{}, ErrCodeSpaceBusy
}

// Redeem consumes the most recent token carrying code. The active->used
// transition is a conditional write in the store, so under concurrent
// redemption exactly one caller succeeds and the rest observe the token
// as already used. Redemption never succeeds twice and never retries.
func (s *SuperTokenService) Redeem(ctx context.Context, code string, actor domain.Actor) (domain.SuperToken, error) {
	log := slogx.FromContext(ctx)

	t, err := s.Store.SuperTokens().GetLatestSuperTokenByCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.SuperToken{}, ErrTokenNotFound
		}
		return domain.SuperToken{}, err
	}

	switch t.Status {
	case domain.TokenUsed:
		return domain.SuperToken{}, ErrTokenAlreadyUsed
	case domain.TokenExpired:
		return domain.SuperToken{}, ErrTokenExpired
	}

	now := s.now()

	if now.After(t.ExpiresAt) {
		// First observation of the expiry: persist the transition. A
		// concurrent observer may have beaten us to it, which changes
		// nothing about the outcome.
		if err := s.Store.SuperTokens().MarkSuperTokenExpired(ctx, t.ID); err != nil &&
			!errors.Is(err, store.ErrConflict) {
			return domain.SuperToken{}, err
		}
		return domain.SuperToken{}, ErrTokenExpired
	}

	if err := s.Store.SuperTokens().MarkSuperTokenUsed(ctx, t.ID, actor.ID, now); err != nil {
		if errors.Is(err, store.ErrConflict) {
			// Lost the race. Re-read to report the terminal state the
			// winner left behind.
			return domain.SuperToken{}, s.terminalError(ctx, t.ID)
		}
		return domain.SuperToken{}, err
	}

	t.Status = domain.TokenUsed
	t.UsedByID = actor.ID
	t.UsedAt = &now

	log.Info("super token redeemed",
		slog.String("token_id", t.ID),
		slog.String("used_by", actor.ID),
	)
	return t, nil
}

// History returns tokens newest first, at most limit, with statuses
// reflecting lazy expiry at read time: a token past its window reads as
// expired even if storage still says active.
func (s *SuperTokenService) History(ctx context.Context, limit int) ([]domain.SuperToken, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	tokens, err := s.Store.SuperTokens().ListSuperTokens(ctx, limit)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range tokens {
		tokens[i].Status = tokens[i].StatusAt(now)
	}
	return tokens, nil
}

// terminalError maps the stored status of a token that refused the used
// transition onto the caller-facing error.
func (s *SuperTokenService) terminalError(ctx context.Context, id string) error {
	t, err := s.Store.SuperTokens().GetSuperTokenByID(ctx, id)
	if err != nil || t.Status == domain.TokenUsed {
		return ErrTokenAlreadyUsed
	}
	if t.Status == domain.TokenExpired {
		return ErrTokenExpired
	}
	return ErrTokenAlreadyUsed
}

// newTokenCode draws a code uniformly from the 6-digit space, zero-padded.
func newTokenCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate token code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
