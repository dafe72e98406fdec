package http

import (
	"net/http"

	"github.com/counterline/posgate/internal/access/service"
	"github.com/counterline/posgate/pkg/httpx"
	"github.com/counterline/posgate/pkg/posapi"
)

type LogoutHandler struct {
	LoginService *service.LoginService
}

// ServeHTTP handles POST /v1/logout.
//
//	@Summary		Sign out
//	@Description	Revokes the caller's session. Idempotent.
//	@Tags			auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		204	"session revoked"
//	@Failure		401	"missing or invalid session token"
//	@Router			/v1/logout [post]
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sessionID := httpx.SessionIDFromContext(r.Context())
	if err := h.LoginService.Logout(r.Context(), sessionID); err != nil {
		writeError(w, http.StatusInternalServerError, posapi.ErrCodeServerError, "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
