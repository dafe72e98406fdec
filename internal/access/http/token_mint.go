package http

import (
	"net/http"

	"github.com/counterline/posgate/internal/access/domain"
	"github.com/counterline/posgate/internal/access/service"
	"github.com/counterline/posgate/pkg/httpx"
	"github.com/counterline/posgate/pkg/posapi"
)

type TokenMintHandler struct {
	SuperTokenService *service.SuperTokenService
	UserService       *service.UserService
}

// ServeHTTP handles POST /v1/tokens/mint.
//
//	@Summary		Mint a super token
//	@Description	Issues a new single-use 6-digit authorization code valid for
//	@Description	five minutes. Admin only; the code is shown exactly once.
//	@Tags			tokens
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201	{object}	posapi.SuperToken
//	@Failure		401	"missing or invalid session token"
//	@Failure		403	"caller is not an administrator"
//	@Failure		500	{object}	posapi.ErrorResponse
//	@Router			/v1/tokens/mint [post]
func (h *TokenMintHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	u, err := h.UserService.GetUserByID(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		writeError(w, http.StatusInternalServerError, posapi.ErrCodeServerError, "internal server error")
		return
	}

	t, err := h.SuperTokenService.Generate(ctx, domain.Actor{ID: u.ID, Name: u.DisplayName})
	if err != nil {
		writeError(w, http.StatusInternalServerError, posapi.ErrCodeServerError, "could not mint a token")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toAPIToken(t))
}
