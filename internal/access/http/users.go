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

type UsersHandler struct {
	UserService *service.UserService
}

// HandleCreate handles POST /v1/users.
//
//	@Summary		Create a user
//	@Description	Registers a seller or administrator account. When the request
//	@Description	omits a password one is generated and returned exactly once.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		posapi.CreateUserRequest	true	"New account"
//	@Success		201		{object}	posapi.CreateUserResponse
//	@Failure		400		{object}	posapi.ErrorResponse	"invalid_request"
//	@Failure		401		"missing or invalid session token"
//	@Failure		403		"caller is not an administrator"
//	@Failure		409		{object}	posapi.ErrorResponse	"email already taken"
//	@Router			/v1/users [post]
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req posapi.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, posapi.ErrCodeInvalidRequest, "malformed JSON body")
		return
	}

	u, generated, err := h.UserService.CreateUser(r.Context(), service.CreateUserParams{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Password:    req.Password,
		Role:        domain.Role(req.Role),
		AccessType:  domain.AccessType(req.AccessType),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidUserRequest),
			errors.Is(err, service.ErrInvalidRole),
			errors.Is(err, service.ErrInvalidAccessType):
			writeError(w, http.StatusBadRequest, posapi.ErrCodeInvalidRequest, err.Error())
		case errors.Is(err, service.ErrEmailAlreadyTaken):
			writeError(w, http.StatusConflict, posapi.ErrCodeInvalidRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, posapi.ErrCodeServerError, "internal server error")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, posapi.CreateUserResponse{
		User:              toAPIUser(u),
		GeneratedPassword: generated,
	})
}

// HandleStatus handles PATCH /v1/users/{id}/status.
//
//	@Summary		Enable or disable a user
//	@Description	Disabling takes effect on the next login attempt; the
//	@Description	account's live sessions are not revoked here.
//	@Tags			users
//	@Accept			json
//	@Security		BearerAuth
//	@Param			id		path	string						true	"User ID"
//	@Param			request	body	posapi.UserStatusRequest	true	"Desired status"
//	@Success		204		"status updated"
//	@Failure		400		{object}	posapi.ErrorResponse	"invalid_request"
//	@Failure		401		"missing or invalid session token"
//	@Failure		403		"caller is not an administrator"
//	@Failure		404		{object}	posapi.ErrorResponse	"no such user"
//	@Router			/v1/users/{id}/status [patch]
func (h *UsersHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	var req posapi.UserStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, posapi.ErrCodeInvalidRequest, "malformed JSON body")
		return
	}

	err := h.UserService.SetUserStatus(r.Context(), r.PathValue("id"), req.Disabled)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, posapi.ErrCodeInvalidRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, posapi.ErrCodeServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
