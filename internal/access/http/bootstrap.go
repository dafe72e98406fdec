package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/counterline/posgate/internal/access/service"
	"github.com/counterline/posgate/pkg/httpx"
	"github.com/counterline/posgate/pkg/posapi"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP handles POST /v1/bootstrap.
//
//	@Summary		Bootstrap the first administrator
//	@Description	Creates the first admin account on an empty deployment.
//	@Description	Requires the pre-configured bootstrap token and refuses once
//	@Description	any user exists.
//	@Tags			system
//	@Accept			json
//	@Produce		json
//	@Param			request	body		posapi.BootstrapRequest	true	"Bootstrap token and admin account"
//	@Success		201		{object}	posapi.BootstrapResponse
//	@Failure		400		{object}	posapi.ErrorResponse	"invalid_request"
//	@Failure		401		{object}	posapi.ErrorResponse	"unauthorized"
//	@Failure		409		{object}	posapi.ErrorResponse	"already_bootstrapped"
//	@Router			/v1/bootstrap [post]
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req posapi.BootstrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, posapi.ErrCodeInvalidRequest, "malformed JSON body")
		return
	}

	admin, err := h.BootstrapService.Bootstrap(r.Context(), req.Token, req.Email, req.DisplayName, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBootstrapAlready):
			writeError(w, http.StatusConflict, posapi.ErrCodeBootstrapAlready, err.Error())
		case errors.Is(err, service.ErrBootstrapUnauthorized):
			writeError(w, http.StatusUnauthorized, posapi.ErrCodeBootstrapUnauthorized, err.Error())
		case errors.Is(err, service.ErrInvalidUserRequest):
			writeError(w, http.StatusBadRequest, posapi.ErrCodeInvalidRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, posapi.ErrCodeServerError, "internal server error")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, posapi.BootstrapResponse{User: toAPIUser(admin)})
}
