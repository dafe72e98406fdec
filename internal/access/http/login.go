package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/counterline/posgate/internal/access/domain"
	"github.com/counterline/posgate/internal/access/geo"
	"github.com/counterline/posgate/internal/access/identity"
	"github.com/counterline/posgate/internal/access/service"
	"github.com/counterline/posgate/pkg/httpx"
	"github.com/counterline/posgate/pkg/posapi"
)

type LoginHandler struct {
	LoginService *service.LoginService
}

// ServeHTTP handles POST /v1/login.
//
//	@Summary		Sign in
//	@Description	Verifies credentials, checks account status and the access
//	@Description	schedule, records the attempt in the session log, and returns
//	@Description	a session token. A login without a usable device geolocation
//	@Description	fails: the audit entry cannot be written without one.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		posapi.LoginRequest	true	"Credentials and device context"
//	@Success		200		{object}	posapi.LoginResponse
//	@Failure		400		{object}	posapi.ErrorResponse	"invalid_request"
//	@Failure		401		{object}	posapi.ErrorResponse	"invalid_credentials"
//	@Failure		403		{object}	posapi.ErrorResponse	"account_disabled or schedule_denied"
//	@Failure		500		{object}	posapi.ErrorResponse	"session_logging_failed"
//	@Router			/v1/login [post]
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req posapi.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, posapi.ErrCodeInvalidRequest, "malformed JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, posapi.ErrCodeInvalidRequest, "email and password are required")
		return
	}

	result, err := h.LoginService.Login(r.Context(), service.LoginRequest{
		Email:      req.Email,
		Password:   req.Password,
		Platform:   req.Platform,
		UserAgent:  r.UserAgent(),
		IP:         httpx.IPKeyExtractor(r),
		IPLocation: clientIPLocation(r),
		Geo:        clientGeo(req.Geolocation),
	})
	if err != nil {
		writeLoginError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, posapi.LoginResponse{
		Token: result.Session.Token,
		User:  toAPIUser(result.User),
	})
}

func writeLoginError(w http.ResponseWriter, err error) {
	var scheduleErr *service.ScheduleDeniedError
	var loggingErr *service.SessionLoggingError

	switch {
	case errors.Is(err, identity.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, posapi.ErrCodeInvalidCredentials, identity.ErrInvalidCredentials.Error())
	case errors.Is(err, service.ErrAccountDisabled):
		writeError(w, http.StatusForbidden, posapi.ErrCodeAccountDisabled, service.ErrAccountDisabled.Error())
	case errors.As(err, &scheduleErr):
		writeError(w, http.StatusForbidden, posapi.ErrCodeScheduleDenied, scheduleErr.Reason)
	case errors.As(err, &loggingErr):
		// The cause travels to the caller so a geolocation denial is
		// distinguishable from an audit write failure.
		writeError(w, http.StatusInternalServerError, posapi.ErrCodeSessionLoggingFailed,
			loggingErr.Cause.Error())
	default:
		writeError(w, http.StatusInternalServerError, posapi.ErrCodeServerError, "internal server error")
	}
}

// clientGeo wraps the position reported in the login payload as the
// capture collaborator the login flow expects. A null position becomes a
// capture failure, which fails the login.
func clientGeo(g *posapi.Geolocation) geo.Capturer {
	if g == nil {
		return geo.ClientReported{}
	}
	return geo.ClientReported{Position: &domain.Geolocation{
		Latitude:       g.Latitude,
		Longitude:      g.Longitude,
		AccuracyMeters: g.AccuracyMeters,
	}}
}

// clientIPLocation reads the coarse location an upstream proxy derived
// from the client IP, when one is present.
func clientIPLocation(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-IP-Location"))
}
