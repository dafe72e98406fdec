package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/counterline/posgate/internal/access/domain"
	"github.com/counterline/posgate/internal/access/service"
	"github.com/counterline/posgate/pkg/httpx"
	"github.com/counterline/posgate/pkg/posapi"
)

type TokenRedeemHandler struct {
	SuperTokenService *service.SuperTokenService
}

// ServeHTTP handles POST /v1/tokens/redeem.
//
//	@Summary		Redeem a super token
//	@Description	Consumes a single-use authorization code. Exactly one caller
//	@Description	can redeem a given code; later attempts see it as already
//	@Description	used, and codes past their five-minute window as expired.
//	@Tags			tokens
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		posapi.RedeemTokenRequest	true	"The 6-digit code"
//	@Success		200		{object}	posapi.SuperToken
//	@Failure		400		{object}	posapi.ErrorResponse	"invalid_request"
//	@Failure		401		"missing or invalid session token"
//	@Failure		404		{object}	posapi.ErrorResponse	"token_not_found"
//	@Failure		409		{object}	posapi.ErrorResponse	"token_already_used"
//	@Failure		410		{object}	posapi.ErrorResponse	"token_expired"
//	@Router			/v1/tokens/redeem [post]
func (h *TokenRedeemHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req posapi.RedeemTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		writeError(w, http.StatusBadRequest, posapi.ErrCodeInvalidRequest, "code is required")
		return
	}

	ctx := r.Context()
	actor := domain.Actor{ID: httpx.UserIDFromContext(ctx)}

	t, err := h.SuperTokenService.Redeem(ctx, req.Code, actor)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenNotFound):
			writeError(w, http.StatusNotFound, posapi.ErrCodeTokenNotFound, service.ErrTokenNotFound.Error())
		case errors.Is(err, service.ErrTokenAlreadyUsed):
			writeError(w, http.StatusConflict, posapi.ErrCodeTokenAlreadyUsed, service.ErrTokenAlreadyUsed.Error())
		case errors.Is(err, service.ErrTokenExpired):
			writeError(w, http.StatusGone, posapi.ErrCodeTokenExpired, service.ErrTokenExpired.Error())
		default:
			writeError(w, http.StatusInternalServerError, posapi.ErrCodeServerError, "internal server error")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAPIToken(t))
}
