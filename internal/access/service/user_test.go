package service

import (
	"context"
	"testing"

	"github.com/counterline/posgate/internal/access/domain"
	"github.com/counterline/posgate/internal/access/store"
	"github.com/counterline/posgate/internal/access/store/drivers/sqlite"
	"github.com/counterline/posgate/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func newUserFixture(t *testing.T) (store.Store, *UserService) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	return st, &UserService{Store: st}
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a seller with an explicit password", func(t *testing.T) {
		st, svc := newUserFixture(t)

		u, generated, err := svc.CreateUser(ctx, CreateUserParams{
			Email:       "bob@example.com",
			DisplayName: "Bob",
			Password:    "hunter2hunter2",
			Role:        domain.RoleSeller,
			AccessType:  domain.AccessWeekend,
		})
		require.NoError(t, err)
		require.Empty(t, generated)
		require.Equal(t, domain.RoleSeller, u.Role)
		require.Equal(t, domain.AccessWeekend, u.AccessType)

		stored, err := st.Users().GetUserByEmail(ctx, "bob@example.com")
		require.NoError(t, err)
		require.NoError(t, cryptox.VerifyPassword("hunter2hunter2", stored.PasswordHash))
	})

	t.Run("generates a password when none is given", func(t *testing.T) {
		st, svc := newUserFixture(t)

		_, generated, err := svc.CreateUser(ctx, CreateUserParams{
			Email:       "carol@example.com",
			DisplayName: "Carol",
			Role:        domain.RoleAdmin,
		})
		require.NoError(t, err)
		require.NotEmpty(t, generated)

		stored, err := st.Users().GetUserByEmail(ctx, "carol@example.com")
		require.NoError(t, err)
		require.NoError(t, cryptox.VerifyPassword(generated, stored.PasswordHash))
	})

	t.Run("rejects duplicate emails", func(t *testing.T) {
		_, svc := newUserFixture(t)

		p := CreateUserParams{Email: "dup@example.com", DisplayName: "Dup", Role: domain.RoleSeller}
		_, _, err := svc.CreateUser(ctx, p)
		require.NoError(t, err)

		_, _, err = svc.CreateUser(ctx, p)
		require.ErrorIs(t, err, ErrEmailAlreadyTaken)
	})

	t.Run("rejects bad roles and access types", func(t *testing.T) {
		_, svc := newUserFixture(t)

		_, _, err := svc.CreateUser(ctx, CreateUserParams{
			Email: "x@example.com", DisplayName: "X", Role: domain.Role("owner"),
		})
		require.ErrorIs(t, err, ErrInvalidRole)

		_, _, err = svc.CreateUser(ctx, CreateUserParams{
			Email: "x@example.com", DisplayName: "X", Role: domain.RoleSeller,
			AccessType: domain.AccessType("none"),
		})
		require.ErrorIs(t, err, ErrInvalidAccessType)

		_, _, err = svc.CreateUser(ctx, CreateUserParams{DisplayName: "X", Role: domain.RoleSeller})
		require.ErrorIs(t, err, ErrInvalidUserRequest)
	})
}

func TestSetUserStatus(t *testing.T) {
	ctx := context.Background()
	st, svc := newUserFixture(t)

	u, _, err := svc.CreateUser(ctx, CreateUserParams{
		Email: "bob@example.com", DisplayName: "Bob", Role: domain.RoleSeller,
	})
	require.NoError(t, err)

	require.NoError(t, svc.SetUserStatus(ctx, u.ID, true))
	stored, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, stored.Disabled)

	require.NoError(t, svc.SetUserStatus(ctx, u.ID, false))
	stored, err = st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, stored.Disabled)

	require.ErrorIs(t, svc.SetUserStatus(ctx, "missing", true), ErrUserNotFound)
}
