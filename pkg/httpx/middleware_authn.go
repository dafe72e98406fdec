package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/counterline/posgate/pkg/slogx"
)

// Principal is the authenticated caller extracted from a session token.
type Principal struct {
	UserID    string
	SessionID string
	Role      string
}

// SessionVerifier authenticates a raw bearer token. Implementations check
// both the token signature and the backing session's revocation state.
type SessionVerifier interface {
	VerifySessionToken(ctx context.Context, raw string) (Principal, error)
}

func AuthnMiddleware(v SessionVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			p, err := v.VerifySessionToken(ctx, raw)
			if err != nil {
				writeBearerError(w, "session verification failed")
				log.Warn("session verify failed", "err", err)
				return
			}

			// Inject into context for downstream handlers.
			ctx = contextWithPrincipal(ctx, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithPrincipal(ctx context.Context, p Principal) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, p.UserID)
	ctx = context.WithValue(ctx, CtxKeySessionID, p.SessionID)
	ctx = context.WithValue(ctx, CtxKeyRole, p.Role)
	return ctx
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}
