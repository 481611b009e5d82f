package http

import (
	"errors"
	"net/http"

	"github.com/merchware/shopd/internal/shop/service"
	"github.com/merchware/shopd/pkg/httpx"
	"github.com/merchware/shopd/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP handles the password login endpoint.
//
//	@Summary		Log in with username and password
//	@Description	Exchanges form credentials for a short-lived bearer token.
//	@Description	Failures are uniform: the response never says whether the username exists.
//	@Tags			Auth
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			username	formData	string	true	"Username"
//	@Param			password	formData	string	true	"Password"
//	@Success		200	{object}	domain.AccessToken	"access_token, token_type, expires_in"
//	@Failure		400	{object}	httpx.ErrorBody		"Malformed form body"
//	@Failure		401	{object}	httpx.ErrorBody		"Incorrect username or password"
//	@Router			/api/v1/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed form body")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	tok, err := h.AuthService.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusUnauthorized, "incorrect username or password")
			return
		}
		log.Error("login failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tok)
}
