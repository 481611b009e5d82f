package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/merchware/shopd/internal/shop/domain"
	"github.com/merchware/shopd/internal/shop/service"
	"github.com/merchware/shopd/pkg/httpx"
	"github.com/merchware/shopd/pkg/slogx"
)

// AuthnMiddleware extracts the bearer token, runs it through the access
// guard and stores the fresh principal in the request context. Every gate
// failure maps to exactly one status code, so a caller learns nothing more
// than it has to.
func AuthnMiddleware(guard *service.Guard) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			principal, err := guard.Authorize(ctx, raw)
			if err != nil {
				writeGuardError(w, log, err)
				return
			}

			ctx = context.WithValue(ctx, httpx.CtxKeyUserID, principal.ID)
			ctx = context.WithValue(ctx, httpx.CtxKeyPrincipal, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin runs after AuthnMiddleware and rejects non-admin principals.
func RequireAdmin(guard *service.Guard) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := principalFromCtx(r.Context())
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}
			if err := guard.RequireAdmin(principal); err != nil {
				httpx.WriteError(w, http.StatusForbidden, "the user does not have enough privileges")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func principalFromCtx(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(httpx.CtxKeyPrincipal).(domain.User)
	return u, ok
}

func writeGuardError(w http.ResponseWriter, log interface{ Warn(string, ...any) }, err error) {
	switch {
	case errors.Is(err, service.ErrMalformedToken):
		writeBearerError(w, "could not validate credentials")
	case errors.Is(err, service.ErrExpiredToken):
		writeBearerError(w, "token expired")
	case errors.Is(err, service.ErrUnknownSubject):
		// Indistinguishable from any other bad token on the wire.
		writeBearerError(w, "could not validate credentials")
	case errors.Is(err, service.ErrInactiveAccount):
		httpx.WriteError(w, http.StatusBadRequest, "inactive user")
	case errors.Is(err, service.ErrUpstreamUnavailable):
		log.Warn("auth store unavailable", "err", err)
		httpx.WriteError(w, http.StatusServiceUnavailable, "service temporarily unavailable")
	default:
		log.Warn("unexpected guard failure", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

// writeBearerError emits an RFC 6750 challenge alongside the JSON envelope.
func writeBearerError(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	httpx.WriteError(w, http.StatusUnauthorized, detail)
}
