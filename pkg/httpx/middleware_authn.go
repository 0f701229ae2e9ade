package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pantrybook/pantry/pkg/slogx"
	"github.com/pantrybook/pantry/pkg/tokenx"
)

// AuthnMiddleware is the bearer verification strategy. It extracts the
// Authorization header, verifies the token, and injects the claims into the
// request context. Every failure collapses to a single 401: callers cannot
// tell a missing header from a bad signature from an expired token.
func AuthnMiddleware(v tokenx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w)
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("token verification failed", "err", err)
				writeBearerError(w)
				return
			}

			// Belt and braces: the verifier already enforced expiry, but the
			// claims may sit in the context for the rest of the request.
			if err := claims.ValidateExpiry(); err != nil {
				writeBearerError(w)
				return
			}

			ctx = contextWithAuth(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithAuth(ctx context.Context, c tokenx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.UserID)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// RFC 6750-style bearer challenge with a deliberately uniform body.
func writeBearerError(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": "unauthenticated",
	})
}
