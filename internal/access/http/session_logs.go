package http

import (
	"net/http"
	"strconv"

	"github.com/counterline/posgate/internal/access/store"
	"github.com/counterline/posgate/pkg/httpx"
	"github.com/counterline/posgate/pkg/posapi"
)

const defaultSessionLogLimit = 100

type SessionLogsHandler struct {
	Store store.Store
}

// ServeHTTP handles GET /v1/sessionlogs.
//
//	@Summary		List session logs
//	@Description	Returns login attempt records newest first. Admin only.
//	@Tags			audit
//	@Produce		json
//	@Security		BearerAuth
//	@Param			limit	query		int	false	"Maximum entries to return (default 100)"
//	@Success		200		{object}	posapi.SessionLogsResponse
//	@Failure		401		"missing or invalid session token"
//	@Failure		403		"caller is not an administrator"
//	@Router			/v1/sessionlogs [get]
func (h *SessionLogsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = defaultSessionLogLimit
	}

	logs, err := h.Store.SessionLogs().ListSessionLogs(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, posapi.ErrCodeServerError, "internal server error")
		return
	}

	out := posapi.SessionLogsResponse{Logs: make([]posapi.SessionLog, 0, len(logs))}
	for _, l := range logs {
		out.Logs = append(out.Logs, toAPISessionLog(l))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
