// Package posapi holds the wire types of the posgate HTTP API and a small
// Go client for them. The server and the e2e suite share these types.
package posapi

import "time"

// ErrorResponse is the error payload every endpoint uses.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Error codes carried in ErrorResponse.Error.
const (
	ErrCodeInvalidRequest        = "invalid_request"
	ErrCodeInvalidCredentials    = "invalid_credentials"
	ErrCodeAccountDisabled       = "account_disabled"
	ErrCodeScheduleDenied        = "schedule_denied"
	ErrCodeSessionLoggingFailed  = "session_logging_failed"
	ErrCodeTokenNotFound         = "token_not_found"
	ErrCodeTokenAlreadyUsed      = "token_already_used"
	ErrCodeTokenExpired          = "token_expired"
	ErrCodeServerError           = "server_error"
	ErrCodeBootstrapAlready      = "already_bootstrapped"
	ErrCodeBootstrapUnauthorized = "unauthorized"
)

// Geolocation is a device position reported with a login attempt.
type Geolocation struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	AccuracyMeters float64 `json:"accuracy_m"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Platform string `json:"platform,omitempty"`

	// Geolocation is the device fix; null when the device denied or could
	// not produce one (which fails the login).
	Geolocation *Geolocation `json:"geolocation"`
}

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	AccessType  string `json:"access_type,omitempty"`
	Disabled    bool   `json:"disabled"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type ScheduleResponse struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

type SuperToken struct {
	ID            string     `json:"id"`
	Code          string     `json:"code"`
	Status        string     `json:"status"`
	CreatedByID   string     `json:"created_by_id"`
	CreatedByName string     `json:"created_by_name"`
	CreatedAt     time.Time  `json:"created_at"`
	ExpiresAt     time.Time  `json:"expires_at"`
	UsedByID      string     `json:"used_by_id,omitempty"`
	UsedAt        *time.Time `json:"used_at,omitempty"`
}

type RedeemTokenRequest struct {
	Code string `json:"code"`
}

type TokenHistoryResponse struct {
	Tokens []SuperToken `json:"tokens"`
}

type SessionLog struct {
	ID            string       `json:"id"`
	UserID        string       `json:"user_id"`
	Outcome       string       `json:"outcome"`
	FailureReason string       `json:"failure_reason,omitempty"`
	Role          string       `json:"role"`
	AccessType    string       `json:"access_type,omitempty"`
	At            time.Time    `json:"at"`
	Platform      string       `json:"platform,omitempty"`
	UserAgent     string       `json:"user_agent,omitempty"`
	Geolocation   *Geolocation `json:"geolocation,omitempty"`
	IP            string       `json:"ip,omitempty"`
	IPLocation    string       `json:"ip_location,omitempty"`
}

type SessionLogsResponse struct {
	Logs []SessionLog `json:"logs"`
}

type CreateUserRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password,omitempty"`
	Role        string `json:"role"`
	AccessType  string `json:"access_type,omitempty"`
}

type CreateUserResponse struct {
	User User `json:"user"`

	// GeneratedPassword is set only when the request omitted a password;
	// it is returned exactly once.
	GeneratedPassword string `json:"generated_password,omitempty"`
}

type UserStatusRequest struct {
	Disabled bool `json:"disabled"`
}

type BootstrapRequest struct {
	Token       string `json:"token,omitempty"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type BootstrapResponse struct {
	User User `json:"user"`
}

type HealthChecks struct {
	Database string `json:"database,omitempty"`
	Signer   string `json:"signer,omitempty"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
