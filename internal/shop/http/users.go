package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/merchware/shopd/internal/shop/service"
	"github.com/merchware/shopd/pkg/httpx"
	"github.com/merchware/shopd/pkg/slogx"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleCreate handles public signup.
//
//	@Summary		Register a new account
//	@Description	Creates a regular (non-admin) active account. Passwords must be at
//	@Description	least 8 characters with a lowercase letter, an uppercase letter, a
//	@Description	digit and one of @$!%*?&.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		createUserRequest	true	"username, email, password"
//	@Success		201		{object}	UserResponse
//	@Failure		400		{object}	httpx.ErrorBody	"Validation failure"
//	@Failure		409		{object}	httpx.ErrorBody	"Username or email already taken"
//	@Router			/api/v1/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.UserService.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			httpx.WriteError(w, http.StatusConflict, "username or email already registered")
			return
		}
		log.Error("user registration failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(u))
}

// HandleList lists accounts (admin only).
//
//	@Summary	List users
//	@Tags		Users
//	@Security	BearerAuth
//	@Produce	json
//	@Param		offset	query		int	false	"Rows to skip"		default(0)
//	@Param		limit	query		int	false	"Max rows to return"	default(10)
//	@Success	200		{array}		UserResponse
//	@Failure	401		{object}	httpx.ErrorBody
//	@Failure	403		{object}	httpx.ErrorBody
//	@Router		/api/v1/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	offset, limit := parsePageParams(r)
	users, err := h.UserService.ListUsers(ctx, offset, limit)
	if err != nil {
		log.Error("listing users failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet returns a single account. Regular users may only read their own.
//
//	@Summary	Get a user
//	@Tags		Users
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"User id"
//	@Success	200	{object}	UserResponse
//	@Failure	403	{object}	httpx.ErrorBody	"Not your account"
//	@Failure	404	{object}	httpx.ErrorBody
//	@Router		/api/v1/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := principalFromCtx(ctx)
	if !ok {
		writeBearerError(w, "missing bearer token")
		return
	}

	id := r.PathValue("id")
	if id != principal.ID && !principal.IsAdmin {
		httpx.WriteError(w, http.StatusForbidden, "the user does not have enough privileges")
		return
	}

	u, err := h.UserService.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Error("loading user failed", "user_id", id, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

// HandleUpdate applies a partial update to the caller's own account.
//
//	@Summary	Update own account
//	@Tags		Users
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"User id (must be the caller's)"
//	@Param		body	body		updateUserRequest	true	"Fields to change"
//	@Success	200		{object}	UserResponse
//	@Failure	400		{object}	httpx.ErrorBody
//	@Failure	403		{object}	httpx.ErrorBody
//	@Failure	409		{object}	httpx.ErrorBody	"Username or email already taken"
//	@Router		/api/v1/users/{id} [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := principalFromCtx(ctx)
	if !ok {
		writeBearerError(w, "missing bearer token")
		return
	}

	id := r.PathValue("id")
	if id != principal.ID {
		httpx.WriteError(w, http.StatusForbidden, "the user does not have enough privileges")
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.UserService.UpdateUser(ctx, id, service.UpdateUserParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserExists):
			httpx.WriteError(w, http.StatusConflict, "username or email already registered")
		case errors.Is(err, service.ErrUserNotFound):
			httpx.WriteError(w, http.StatusNotFound, "user not found")
		default:
			log.Error("updating user failed", "user_id", id, "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

// HandleDelete removes the caller's own account.
//
//	@Summary	Delete own account
//	@Tags		Users
//	@Security	BearerAuth
//	@Param		id	path	string	true	"User id (must be the caller's)"
//	@Success	204
//	@Failure	400	{object}	httpx.ErrorBody	"Account still has pending orders"
//	@Failure	403	{object}	httpx.ErrorBody
//	@Router		/api/v1/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := principalFromCtx(ctx)
	if !ok {
		writeBearerError(w, "missing bearer token")
		return
	}

	id := r.PathValue("id")
	if id != principal.ID {
		httpx.WriteError(w, http.StatusForbidden, "the user does not have enough privileges")
		return
	}

	if err := h.UserService.DeleteUser(ctx, id); err != nil {
		switch {
		case errors.Is(err, service.ErrHasPendingOrders):
			httpx.WriteError(w, http.StatusBadRequest, "account still has pending orders")
		case errors.Is(err, service.ErrUserNotFound):
			httpx.WriteError(w, http.StatusNotFound, "user not found")
		default:
			log.Error("deleting user failed", "user_id", id, "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleChangeRole grants or revokes admin rights (admin only).
//
//	@Summary	Change a user's role
//	@Tags		Users
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		changeRoleRequest	true	"id, is_admin"
//	@Success	200		{object}	UserResponse
//	@Failure	403		{object}	httpx.ErrorBody
//	@Failure	404		{object}	httpx.ErrorBody
//	@Router		/api/v1/users/change_role [put].
func (h *UsersHandler) HandleChangeRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req changeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.UserService.SetAdmin(ctx, req.ID, req.IsAdmin)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Error("changing role failed", "user_id", req.ID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

// parsePageParams reads offset/limit query parameters; bad or missing
// values fall back to the service defaults. An explicit limit=0 also gets
// the default page size, it is not a request for zero rows.
func parsePageParams(r *http.Request) (offset, limit int64) {
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			offset = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			limit = n
		}
	}
	return offset, limit
}
