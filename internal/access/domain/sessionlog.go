package domain

import "time"

// LoginOutcome records whether a login attempt succeeded.
type LoginOutcome string

const (
	LoginSuccess LoginOutcome = "success"
	LoginFailed  LoginOutcome = "failed"
)

// Geolocation is a device-reported position captured at login time.
type Geolocation struct {
	Latitude       float64
	Longitude      float64
	AccuracyMeters float64
}

// SessionLog is one append-only record of a login attempt. Entries are
// written exactly once and never updated or deleted by the access core.
type SessionLog struct {
	ID            string
	UserID        string
	Outcome       LoginOutcome
	FailureReason string // empty on success
	Role          Role
	AccessType    AccessType
	At            time.Time
	Platform      string
	UserAgent     string
	Geolocation   *Geolocation // nil when the attempt never reached capture
	IP            string
	IPLocation    string // coarse IP-derived location, may be empty
	CreatedAt     time.Time
}
