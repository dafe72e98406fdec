package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/counterline/posgate/internal/access/domain"
	"github.com/counterline/posgate/internal/access/geo"
	"github.com/counterline/posgate/internal/access/identity"
	"github.com/counterline/posgate/internal/access/store"
	"github.com/counterline/posgate/pkg/idx"
	"github.com/counterline/posgate/pkg/slogx"
)

// ErrAccountDisabled doubles as the audit log reason for the denial.
var ErrAccountDisabled = errors.New("account disabled by administrator")

// ScheduleDeniedError carries the gate's human-readable reason; the
// reason string reaches the user verbatim.
type ScheduleDeniedError struct {
	Reason string
}

func (e *ScheduleDeniedError) Error() string { return e.Reason }

// SessionLoggingError reports that the blocking success-path audit write
// (including its geolocation capture) failed, invalidating the login.
type SessionLoggingError struct {
	Cause error
}

func (e *SessionLoggingError) Error() string { return "session logging failed: " + e.Cause.Error() }
func (e *SessionLoggingError) Unwrap() error { return e.Cause }

// DefaultGeoTimeout bounds the geolocation capture during login.
const DefaultGeoTimeout = 10 * time.Second

// LoginRequest is one sign-in attempt plus the device context that goes
// into its audit entry.
type LoginRequest struct {
	Email    string
	Password string

	Platform  string
	UserAgent string
	IP        string

	// IPLocation is a coarse location derived from the IP upstream (load
	// balancer header or similar); may be empty.
	IPLocation string

	// Geo captures the device position for the success-path audit entry.
	Geo geo.Capturer
}

// LoginResult is a successful login: the profile plus the live session.
type LoginResult struct {
	User    domain.User
	Session identity.Handle
}

// LoginService sequences a login attempt: credential verification,
// disabled-account check, schedule gate, audit logging. A failure in any
// later step terminates the identity session established in the first, so
// no attempt ever leaves an orphaned authenticated session.
//
// Audit writes are deliberately asymmetric. On the denial paths (disabled
// account, schedule) the write is best-effort: the user is being rejected
// regardless, so a logging failure is swallowed and only reported
// operationally. On the success path the write is blocking and must carry
// a captured geolocation: it is the only record that access happened, so
// no record means no login.
type LoginService struct {
	Identity identity.Provider
	Store    store.Store

	// GeoTimeout bounds the geolocation capture; defaults to
	// DefaultGeoTimeout. Expiry counts as a capture failure.
	GeoTimeout time.Duration

	// Now is the injectable clock; defaults to time.Now.
	Now func() time.Time
}

func (s *LoginService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *LoginService) geoTimeout() time.Duration {
	if s.GeoTimeout > 0 {
		return s.GeoTimeout
	}
	return DefaultGeoTimeout
}

func (s *LoginService) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Verify credentials. A failure here propagates untouched and is
	// not logged: the attempt is not yet attributable to an account row.
	handle, err := s.Identity.VerifyCredentials(ctx, req.Email, req.Password)
	if err != nil {
		return LoginResult{}, err
	}

	// 2. Load the profile and check account status.
	u, err := s.Identity.LoadProfile(ctx, handle.UserID)
	if err != nil {
		s.terminate(ctx, handle.SessionID)
		return LoginResult{}, err
	}

	now := s.now()

	if u.Disabled {
		s.logDenied(ctx, u, req, now, ErrAccountDisabled.Error())
		s.terminate(ctx, handle.SessionID)
		log.Warn("login rejected: account disabled",
			slog.String("user_id", u.ID),
		)
		return LoginResult{}, ErrAccountDisabled
	}

	// 3. Schedule gate.
	if dec := EvaluateSchedule(u, now); !dec.Allowed {
		s.logDenied(ctx, u, req, now, dec.Reason)
		s.terminate(ctx, handle.SessionID)
		log.Warn("login rejected by schedule",
			slog.String("user_id", u.ID),
			slog.String("reason", dec.Reason),
		)
		return LoginResult{}, &ScheduleDeniedError{Reason: dec.Reason}
	}

	// 4. Blocking audit write. The geolocation capture is part of the
	// entry; if capture or persistence fails, the tentative session is
	// torn down and the login fails.
	gctx, cancel := context.WithTimeout(ctx, s.geoTimeout())
	loc, err := s.capture(gctx, req.Geo)
	cancel()
	if err != nil {
		s.terminate(ctx, handle.SessionID)
		log.Warn("login failed: geolocation capture",
			slog.String("user_id", u.ID),
			slog.Any("error", err),
		)
		return LoginResult{}, &SessionLoggingError{Cause: err}
	}

	entry := newSessionLog(u, req, now, domain.LoginSuccess, "")
	entry.Geolocation = &loc
	if err := s.Store.SessionLogs().CreateSessionLog(ctx, entry); err != nil {
		s.terminate(ctx, handle.SessionID)
		log.Error("login failed: session log write",
			slog.String("user_id", u.ID),
			slog.Any("error", err),
		)
		return LoginResult{}, &SessionLoggingError{Cause: err}
	}

	// 5. The identity session stays live.
	log.Info("login succeeded",
		slog.String("user_id", u.ID),
		slog.String("role", string(u.Role)),
	)
	return LoginResult{User: u, Session: handle}, nil
}

// Logout terminates the caller's identity session. Idempotent: signing
// out an already-revoked session is not an error.
func (s *LoginService) Logout(ctx context.Context, sessionID string) error {
	if err := s.Identity.Terminate(ctx, sessionID); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("logout",
		slog.String("session_id", sessionID),
	)
	return nil
}

// capture runs the geolocation collaborator under the already-bounded
// context and normalizes deadline expiry to ErrTimeout.
func (s *LoginService) capture(ctx context.Context, c geo.Capturer) (domain.Geolocation, error) {
	if c == nil {
		return domain.Geolocation{}, geo.ErrUnavailable
	}
	loc, err := c.Capture(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.Geolocation{}, geo.ErrTimeout
		}
		return domain.Geolocation{}, err
	}
	return loc, nil
}

// logDenied appends a failed-attempt entry best-effort: a write failure
// must not change the denial it reports, so it is swallowed here and only
// surfaced on the operational log.
func (s *LoginService) logDenied(ctx context.Context, u domain.User, req LoginRequest, now time.Time, reason string) {
	entry := newSessionLog(u, req, now, domain.LoginFailed, reason)
	if err := s.Store.SessionLogs().CreateSessionLog(ctx, entry); err != nil {
		slogx.FromContext(ctx).Warn("best-effort session log write failed",
			slog.String("user_id", u.ID),
			slog.String("reason", reason),
			slog.Any("error", err),
		)
	}
}

// terminate signs the identity session out. The primary error has already
// been decided by the caller, so a termination failure is only reported
// operationally.
func (s *LoginService) terminate(ctx context.Context, sessionID string) {
	if err := s.Identity.Terminate(ctx, sessionID); err != nil {
		slogx.FromContext(ctx).Error("failed to terminate identity session",
			slog.String("session_id", sessionID),
			slog.Any("error", err),
		)
	}
}

func newSessionLog(u domain.User, req LoginRequest, now time.Time, outcome domain.LoginOutcome, reason string) domain.SessionLog {
	return domain.SessionLog{
		ID:            idx.New().String(),
		UserID:        u.ID,
		Outcome:       outcome,
		FailureReason: reason,
		Role:          u.Role,
		AccessType:    u.AccessType,
		At:            now,
		Platform:      req.Platform,
		UserAgent:     req.UserAgent,
		IP:            req.IP,
		IPLocation:    req.IPLocation,
		CreatedAt:     now,
	}
}
