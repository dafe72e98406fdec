package store

import (
	"context"
	"errors"
	"time"

	"github.com/counterline/posgate/internal/access/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrConflict reports a conditional update whose guard did not hold
	// (e.g. marking a token used when it is no longer active).
	ErrConflict = errors.New("store: conflicting state")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement this. It exposes sub-repositories to keep concerns tidy
// and testable.
type Store interface {
	Users() Users
	Sessions() Sessions
	SessionLogs() SessionLogs
	SuperTokens() SuperTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during credential verification.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// SetUserDisabled flips the disabled flag and bumps updated_at.
	SetUserDisabled(ctx context.Context, userID string, disabled bool) error

	// IsEmpty returns true if there are no users (bootstrap check).
	IsEmpty(ctx context.Context) (bool, error)
}

type Sessions interface {
	// CreateSession stores a new identity session row.
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSessionByID returns a session by id, revoked or not.
	GetSessionByID(ctx context.Context, id string) (domain.Session, error)

	// RevokeSession sets revoked_at=now if the session is not already
	// revoked. Revoking twice is a no-op, not an error.
	RevokeSession(ctx context.Context, id string, now time.Time) error

	// DeleteDeadSessions removes revoked or expired sessions (housekeeping).
	DeleteDeadSessions(ctx context.Context, now time.Time) error
}

type SessionLogs interface {
	// CreateSessionLog appends one login-attempt record. Entries are
	// immutable once written; there is no update or delete here on purpose.
	CreateSessionLog(ctx context.Context, l domain.SessionLog) error

	// ListSessionLogs returns entries newest first, at most limit.
	ListSessionLogs(ctx context.Context, limit int) ([]domain.SessionLog, error)

	// PurgeSessionLogsBefore deletes entries created before cutoff
	// (retention housekeeping, not part of the login flow).
	PurgeSessionLogsBefore(ctx context.Context, cutoff time.Time) error
}

type SuperTokens interface {
	// CreateSuperToken inserts a freshly minted token. A partial unique
	// index on (code) WHERE status='active' makes a duplicate active code
	// surface as ErrAlreadyExists.
	CreateSuperToken(ctx context.Context, t domain.SuperToken) error

	// GetLatestSuperTokenByCode returns the most recently created token
	// with the given code, regardless of status.
	GetLatestSuperTokenByCode(ctx context.Context, code string) (domain.SuperToken, error)

	// GetSuperTokenByID returns a token by id.
	GetSuperTokenByID(ctx context.Context, id string) (domain.SuperToken, error)

	// MarkSuperTokenUsed transitions active -> used, recording who redeemed
	// it and when. The update is conditional on status='active'; if the
	// guard fails (already used or already expired in storage) it returns
	// ErrConflict. This is the compare-and-swap that guarantees at most one
	// successful redemption across concurrent callers and processes.
	MarkSuperTokenUsed(ctx context.Context, id string, usedBy string, usedAt time.Time) error

	// MarkSuperTokenExpired transitions active -> expired. Conditional on
	// status='active'; returns ErrConflict if the guard fails.
	MarkSuperTokenExpired(ctx context.Context, id string) error

	// ListSuperTokens returns tokens newest first, at most limit. Statuses
	// are returned as stored; lazy expiry is derived by the caller.
	ListSuperTokens(ctx context.Context, limit int) ([]domain.SuperToken, error)

	// PurgeTerminalSuperTokensBefore deletes used/expired tokens created
	// before cutoff. It never touches active rows and never computes
	// expiry; that stays a read-time derivation.
	PurgeTerminalSuperTokensBefore(ctx context.Context, cutoff time.Time) error
}
