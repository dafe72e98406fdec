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
	ErrInvalidUserRequest = errors.New("invalid user request")
	ErrEmailAlreadyTaken  = errors.New("email already taken")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidAccessType  = errors.New("invalid access type")
	ErrUserNotFound       = errors.New("user not found")
)

type UserService struct {
	Store store.Store

	// Now is the injectable clock; defaults to time.Now.
	Now func() time.Time
}

func (s *UserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

// CreateUserParams describes an account an administrator is creating.
// An empty Password means "generate one"; the generated value is returned
// once and never stored in the clear.
type CreateUserParams struct {
	Email       string
	DisplayName string
	Password    string
	Role        domain.Role
	AccessType  domain.AccessType
}

// CreateUser registers a new account. Returns the user and, when the
// password was generated, its cleartext for one-time delivery.
func (s *UserService) CreateUser(ctx context.Context, p CreateUserParams) (domain.User, string, error) {
	log := slogx.FromContext(ctx)

	if p.Email == "" || p.DisplayName == "" {
		return domain.User{}, "", ErrInvalidUserRequest
	}

	switch p.Role {
	case domain.RoleAdmin, domain.RoleSeller:
	default:
		return domain.User{}, "", ErrInvalidRole
	}

	switch p.AccessType {
	case domain.AccessUnrestricted, domain.AccessWeek, domain.AccessWeekend:
	default:
		return domain.User{}, "", ErrInvalidAccessType
	}

	var generated string
	password := p.Password
	if password == "" {
		var err error
		if generated, err = cryptox.GeneratePassword(); err != nil {
			return domain.User{}, "", err
		}
		password = generated
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, "", err
	}

	now := s.now()
	u := domain.User{
		ID:           idx.New().String(),
		Email:        p.Email,
		DisplayName:  p.DisplayName,
		PasswordHash: hash,
		Role:         p.Role,
		AccessType:   p.AccessType,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, "", ErrEmailAlreadyTaken
		}
		log.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, "", err
	}

	log.Info("user created",
		slog.String("user_id", u.ID),
		slog.String("role", string(u.Role)),
		slog.String("access_type", string(u.AccessType)),
	)
	return u, generated, nil
}

// SetUserStatus enables or disables an account. Disabling takes effect on
// the next login attempt; existing sessions are not revoked here.
func (s *UserService) SetUserStatus(ctx context.Context, userID string, disabled bool) error {
	log := slogx.FromContext(ctx)

	if err := s.Store.Users().SetUserDisabled(ctx, userID, disabled); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	log.Info("user status changed",
		slog.String("user_id", userID),
		slog.Bool("disabled", disabled),
	)
	return nil
}
