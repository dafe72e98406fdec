package service

import (
	"context"
	"time"

	"github.com/counterline/posgate/internal/access/domain"
	"github.com/counterline/posgate/internal/access/store"
)

// Allowed clock window for typed accounts, in minutes since midnight
// local time: [08:00, 21:00).
const (
	scheduleOpenMinute  = 8 * 60
	scheduleCloseMinute = 21 * 60
)

// Denial reasons. These strings are part of the contract: they surface
// verbatim to the user and into the session log.
const (
	ReasonWeekdaysOnly      = "weekday accounts may only sign in Monday through Friday"
	ReasonWeekendOnly       = "weekend accounts may only sign in on Saturday or Sunday"
	ReasonOutsideHours      = "sign-in is only allowed between 08:00 and 21:00"
	ReasonInvalidAccessType = "account has an invalid access type"
)

// EvaluateSchedule decides whether a user may sign in at the given
// instant. Pure and deterministic: no I/O, no side effects, the clock is
// an argument.
//
// Administrators are always allowed, as are accounts with no access type
// (they predate schedule enforcement). For typed accounts the day check
// takes priority over the hour check: a weekday account at Saturday 22:00
// is told about the day, not the hour.
func EvaluateSchedule(u domain.User, now time.Time) domain.ScheduleDecision {
	if u.Role == domain.RoleAdmin {
		return domain.ScheduleDecision{Allowed: true}
	}
	if u.AccessType == domain.AccessUnrestricted {
		return domain.ScheduleDecision{Allowed: true}
	}

	day := now.Weekday()
	weekend := day == time.Saturday || day == time.Sunday
	minute := now.Hour()*60 + now.Minute()
	inWindow := minute >= scheduleOpenMinute && minute < scheduleCloseMinute

	switch u.AccessType {
	case domain.AccessWeek:
		if weekend {
			return domain.ScheduleDecision{Reason: ReasonWeekdaysOnly}
		}
		if !inWindow {
			return domain.ScheduleDecision{Reason: ReasonOutsideHours}
		}
		return domain.ScheduleDecision{Allowed: true}

	case domain.AccessWeekend:
		if !weekend {
			return domain.ScheduleDecision{Reason: ReasonWeekendOnly}
		}
		if !inWindow {
			return domain.ScheduleDecision{Reason: ReasonOutsideHours}
		}
		return domain.ScheduleDecision{Allowed: true}

	default:
		return domain.ScheduleDecision{Reason: ReasonInvalidAccessType}
	}
}

// ScheduleService exposes the gate for an already-authenticated user, so
// clients can show the decision without attempting a login.
type ScheduleService struct {
	Store store.Store

	// Now is the injectable clock; defaults to time.Now.
	Now func() time.Time
}

func (s *ScheduleService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ValidateSchedule evaluates the gate for the given user at the current
// instant.
func (s *ScheduleService) ValidateSchedule(ctx context.Context, userID string) (domain.ScheduleDecision, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.ScheduleDecision{}, err
	}
	return EvaluateSchedule(u, s.now()), nil
}
