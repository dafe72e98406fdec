package service

import (
	"context"
	"testing"
	"time"

	"github.com/counterline/posgate/internal/access/domain"
	"github.com/counterline/posgate/internal/access/store/drivers/sqlite"
	"github.com/counterline/posgate/pkg/idx"
	"github.com/stretchr/testify/require"
)

// Fixed instants on known weekdays: 2026-01-07 is a Wednesday,
// 2026-01-10 a Saturday, 2026-01-11 a Sunday.
func wednesday(hour, min int) time.Time {
	return time.Date(2026, time.January, 7, hour, min, 0, 0, time.Local)
}

func saturday(hour, min int) time.Time {
	return time.Date(2026, time.January, 10, hour, min, 0, 0, time.Local)
}

func sunday(hour, min int) time.Time {
	return time.Date(2026, time.January, 11, hour, min, 0, 0, time.Local)
}

func TestEvaluateSchedule(t *testing.T) {
	t.Parallel()

	week := domain.User{Role: domain.RoleSeller, AccessType: domain.AccessWeek}
	weekend := domain.User{Role: domain.RoleSeller, AccessType: domain.AccessWeekend}

	t.Run("admins are always allowed", func(t *testing.T) {
		admin := domain.User{Role: domain.RoleAdmin, AccessType: domain.AccessWeek}
		dec := EvaluateSchedule(admin, saturday(3, 0))
		require.True(t, dec.Allowed)
		require.Empty(t, dec.Reason)
	})

	t.Run("untyped accounts are always allowed", func(t *testing.T) {
		u := domain.User{Role: domain.RoleSeller, AccessType: domain.AccessUnrestricted}
		require.True(t, EvaluateSchedule(u, sunday(2, 30)).Allowed)
	})

	t.Run("week account on a weekday in hours", func(t *testing.T) {
		require.True(t, EvaluateSchedule(week, wednesday(10, 0)).Allowed)
	})

	t.Run("week account on a weekend", func(t *testing.T) {
		dec := EvaluateSchedule(week, saturday(10, 0))
		require.False(t, dec.Allowed)
		require.Equal(t, ReasonWeekdaysOnly, dec.Reason)
	})

	t.Run("week account outside hours", func(t *testing.T) {
		dec := EvaluateSchedule(week, wednesday(22, 0))
		require.False(t, dec.Allowed)
		require.Equal(t, ReasonOutsideHours, dec.Reason)
	})

	t.Run("day violation wins over hour violation", func(t *testing.T) {
		// Saturday 22:00 breaks both rules for a week account; the day
		// reason is the one reported.
		dec := EvaluateSchedule(week, saturday(22, 0))
		require.False(t, dec.Allowed)
		require.Equal(t, ReasonWeekdaysOnly, dec.Reason)

		dec = EvaluateSchedule(weekend, wednesday(22, 0))
		require.False(t, dec.Allowed)
		require.Equal(t, ReasonWeekendOnly, dec.Reason)
	})

	t.Run("weekend account on a weekend in hours", func(t *testing.T) {
		require.True(t, EvaluateSchedule(weekend, saturday(10, 0)).Allowed)
		require.True(t, EvaluateSchedule(weekend, sunday(12, 0)).Allowed)
	})

	t.Run("weekend account on a weekday", func(t *testing.T) {
		dec := EvaluateSchedule(weekend, wednesday(10, 0))
		require.False(t, dec.Allowed)
		require.Equal(t, ReasonWeekendOnly, dec.Reason)
	})

	t.Run("window boundaries", func(t *testing.T) {
		// [08:00, 21:00): opening minute is in, closing minute is out.
		require.True(t, EvaluateSchedule(week, wednesday(8, 0)).Allowed)
		require.True(t, EvaluateSchedule(week, wednesday(20, 59)).Allowed)

		dec := EvaluateSchedule(week, wednesday(7, 59))
		require.Equal(t, ReasonOutsideHours, dec.Reason)

		dec = EvaluateSchedule(week, wednesday(21, 0))
		require.Equal(t, ReasonOutsideHours, dec.Reason)
	})

	t.Run("unknown access type is denied", func(t *testing.T) {
		u := domain.User{Role: domain.RoleSeller, AccessType: domain.AccessType("none")}
		dec := EvaluateSchedule(u, wednesday(10, 0))
		require.False(t, dec.Allowed)
		require.Equal(t, ReasonInvalidAccessType, dec.Reason)
	})

	t.Run("disabled flag does not influence the gate", func(t *testing.T) {
		u := domain.User{Role: domain.RoleSeller, AccessType: domain.AccessWeek, Disabled: true}
		require.True(t, EvaluateSchedule(u, wednesday(10, 0)).Allowed)
	})
}

func TestScheduleServiceValidateSchedule(t *testing.T) {
	ctx := context.Background()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	u := domain.User{
		ID:           idx.New().String(),
		Email:        "seller@example.com",
		DisplayName:  "Seller",
		PasswordHash: "hash",
		Role:         domain.RoleSeller,
		AccessType:   domain.AccessWeek,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, st.Users().CreateUser(ctx, u))

	svc := &ScheduleService{Store: st, Now: func() time.Time { return saturday(10, 0) }}

	dec, err := svc.ValidateSchedule(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, dec.Allowed)
	require.Equal(t, ReasonWeekdaysOnly, dec.Reason)

	svc.Now = func() time.Time { return wednesday(9, 15) }
	dec, err = svc.ValidateSchedule(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, dec.Allowed)
}
