package httpx

import (
	"context"

	"github.com/pantrybook/pantry/pkg/tokenx"
)

type ctxKey string

const (
	CtxKeyUserID ctxKey = "user_id"
	CtxKeyClaims ctxKey = "claims"
)

// UserIDFromContext returns the authenticated user's ID, or "" when the
// request did not pass the bearer middleware.
func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}

// ClaimsFromContext returns the verified claims injected by the bearer
// middleware.
func ClaimsFromContext(ctx context.Context) (tokenx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(tokenx.Claims)
	return c, ok
}
