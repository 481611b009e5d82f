package httpx

import "context"

type ctxKey string

const (
	// CtxKeyUserID holds the authenticated user's id (string).
	CtxKeyUserID ctxKey = "user_id"

	// CtxKeyPrincipal holds the freshly loaded user record the access guard
	// resolved for this request.
	CtxKeyPrincipal ctxKey = "principal"
)

// UserIDFromCtx returns the authenticated user id, or "" when the request
// is unauthenticated.
func UserIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}
