package http

import (
	"net/http"
	"strconv"

	"github.com/counterline/posgate/internal/access/service"
	"github.com/counterline/posgate/pkg/httpx"
	"github.com/counterline/posgate/pkg/posapi"
)

type TokenHistoryHandler struct {
	SuperTokenService *service.SuperTokenService
}

// ServeHTTP handles GET /v1/tokens.
//
//	@Summary		List super tokens
//	@Description	Returns minted tokens newest first, with statuses reflecting
//	@Description	expiry at read time. Admin only.
//	@Tags			tokens
//	@Produce		json
//	@Security		BearerAuth
//	@Param			limit	query		int	false	"Maximum entries to return (default 50)"
//	@Success		200		{object}	posapi.TokenHistoryResponse
//	@Failure		401		"missing or invalid session token"
//	@Failure		403		"caller is not an administrator"
//	@Router			/v1/tokens [get]
func (h *TokenHistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	tokens, err := h.SuperTokenService.History(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, posapi.ErrCodeServerError, "internal server error")
		return
	}

	out := posapi.TokenHistoryResponse{Tokens: make([]posapi.SuperToken, 0, len(tokens))}
	for _, t := range tokens {
		out.Tokens = append(out.Tokens, toAPIToken(t))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
