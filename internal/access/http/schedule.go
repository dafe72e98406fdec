package http

import (
	"net/http"

	"github.com/counterline/posgate/internal/access/service"
	"github.com/counterline/posgate/pkg/httpx"
	"github.com/counterline/posgate/pkg/posapi"
)

type ScheduleHandler struct {
	ScheduleService *service.ScheduleService
}

// ServeHTTP handles GET /v1/schedule.
//
//	@Summary		Check access schedule
//	@Description	Evaluates the caller's access window at the current instant
//	@Description	without attempting a login. Useful for clients that want to
//	@Description	warn the user before credentials are entered.
//	@Tags			auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	posapi.ScheduleResponse
//	@Failure		401	"missing or invalid session token"
//	@Router			/v1/schedule [get]
func (h *ScheduleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	dec, err := h.ScheduleService.ValidateSchedule(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, posapi.ErrCodeServerError, "internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, posapi.ScheduleResponse{
		Allowed: dec.Allowed,
		Reason:  dec.Reason,
	})
}
