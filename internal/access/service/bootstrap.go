package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/counterline/posgate/internal/access/domain"
	"github.com/counterline/posgate/internal/access/store"
	"github.com/counterline/posgate/pkg/cryptox"
	"github.com/counterline/posgate/pkg/idx"
	"github.com/counterline/posgate/pkg/slogx"
)

var (
	ErrBootstrapAlready      = errors.New("system already bootstrapped")
	ErrBootstrapUnauthorized = errors.New("unauthorized bootstrap attempt")
)

// BootstrapService creates the first administrator on an empty store.
// Without it a fresh deployment has nobody who can mint tokens or create
// seller accounts.
type BootstrapService struct {
	Store store.Store
	Token string // Pre-configured bootstrap token

	// Now is the injectable clock; defaults to time.Now.
	Now func() time.Time
}

func (s *BootstrapService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// Bootstrap creates the first admin account and returns it.
func (s *BootstrapService) Bootstrap(
	ctx context.Context,
	token string,
	email, displayName, password string,
) (domain.User, error) {
	l := slogx.FromContext(ctx)

	// 1. Refuse once any user exists.
	if bootstrapped, _ := s.IsBootstrapped(ctx); bootstrapped {
		l.Warn("attempted bootstrap on already-bootstrapped system")
		return domain.User{}, ErrBootstrapAlready
	}

	// 2. Validate provided token.
	if token != s.Token {
		l.Warn("unauthorized bootstrap attempt")
		return domain.User{}, ErrBootstrapUnauthorized
	}

	if email == "" || displayName == "" || password == "" {
		return domain.User{}, ErrInvalidUserRequest
	}

	// 3. Hash password.
	passHash, err := cryptox.HashPassword(password)
	if err != nil {
		l.Error("failed to hash admin password", slog.Any("error", err))
		return domain.User{}, err
	}

	// 4. Create the admin in a transaction; the emptiness re-check inside
	// the tx closes the race between two concurrent bootstrap calls.
	now := s.now()
	admin := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passHash,
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		empty, err := tx.Users().IsEmpty(ctx)
		if err != nil {
			return err
		}
		if !empty {
			return ErrBootstrapAlready
		}
		return tx.Users().CreateUser(ctx, admin)
	})
	if err != nil {
		if !errors.Is(err, ErrBootstrapAlready) {
			l.Error("failed to create admin user", slog.Any("error", err))
		}
		return domain.User{}, err
	}

	l.Info("system bootstrapped",
		slog.String("admin_user_id", admin.ID),
	)
	return admin, nil
}
