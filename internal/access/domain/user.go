package domain

import "time"

// Role classifies what a user account may do in the store.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleSeller Role = "seller"
)

// AccessType governs which days a seller account may sign in.
// An empty value means the account predates schedule enforcement and is
// unrestricted.
type AccessType string

const (
	AccessUnrestricted AccessType = ""
	AccessWeek         AccessType = "week"
	AccessWeekend      AccessType = "weekend"
)

type User struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string // argon2id encoded
	Role         Role
	AccessType   AccessType
	Disabled     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor identifies who performed a privileged operation, for audit fields.
type Actor struct {
	ID   string
	Name string
}
