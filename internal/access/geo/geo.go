// Package geo is the geolocation collaborator used by the login flow. POS
// terminals resolve their position client-side (browser geolocation API)
// and attach the fix to the login request; the server treats that as a
// capture that can be denied, unavailable, or too slow.
package geo

import (
	"context"
	"errors"

	"github.com/counterline/posgate/internal/access/domain"
)

var (
	ErrDenied      = errors.New("geolocation: permission denied")
	ErrUnavailable = errors.New("geolocation: position unavailable")
	ErrTimeout     = errors.New("geolocation: capture timed out")
)

// Capturer acquires the device position for the login attempt in progress.
// Implementations must respect ctx cancellation; the caller bounds the
// capture with a timeout.
type Capturer interface {
	Capture(ctx context.Context) (domain.Geolocation, error)
}

// CapturerFunc adapts a function to the Capturer interface.
type CapturerFunc func(ctx context.Context) (domain.Geolocation, error)

func (f CapturerFunc) Capture(ctx context.Context) (domain.Geolocation, error) {
	return f(ctx)
}

// ClientReported wraps a position the device already resolved. A nil
// position means the device denied or could not produce a fix.
type ClientReported struct {
	Position *domain.Geolocation
}

func (c ClientReported) Capture(ctx context.Context) (domain.Geolocation, error) {
	if err := ctx.Err(); err != nil {
		return domain.Geolocation{}, ErrTimeout
	}
	if c.Position == nil {
		return domain.Geolocation{}, ErrDenied
	}
	return *c.Position, nil
}
