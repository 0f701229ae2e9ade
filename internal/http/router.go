package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/pantrybook/pantry/pkg/httpx"
	"github.com/pantrybook/pantry/pkg/slogx"
	"github.com/pantrybook/pantry/pkg/tokenx"
)

// RouterConfig collects everything the router needs to wire routes to
// handlers and middleware.
type RouterConfig struct {
	Logger   *slog.Logger
	Verifier tokenx.Verifier

	Sessions  *SessionHandler
	Meals     *MealsHandler
	Groceries *GroceriesHandler
	Health    *HealthHandler
}

// NewRouter assembles the HTTP surface. Credential endpoints are limited by
// IP before any processing; everything under a bearer token is verified by
// the authn middleware and then limited per user.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	authn := httpx.AuthnMiddleware(cfg.Verifier)

	// Public credential surface. Strictly limited: these endpoints are the
	// brute-force target.
	mux.Handle("POST /v1/session/signup", httpx.Chain(
		http.HandlerFunc(cfg.Sessions.SignUp),
		httpx.RateLimitByIP(httpx.StrictLimit),
	))
	mux.Handle("POST /v1/session/login", httpx.Chain(
		http.HandlerFunc(cfg.Sessions.Login),
		httpx.RateLimitByIP(httpx.StrictLimit),
	))

	// Token-gated session management.
	mux.Handle("POST /v1/session/refresh", httpx.Chain(
		http.HandlerFunc(cfg.Sessions.Refresh),
		authn,
		httpx.RateLimitByUser(httpx.ModerateLimit),
	))
	mux.Handle("POST /v1/session/logout", httpx.Chain(
		http.HandlerFunc(cfg.Sessions.Logout),
		authn,
		httpx.RateLimitByUser(httpx.ModerateLimit),
	))

	// Meal plan.
	mux.Handle("GET /v1/meals", httpx.Chain(
		http.HandlerFunc(cfg.Meals.List),
		authn,
		httpx.RateLimitByUser(httpx.LenientLimit),
	))
	mux.Handle("PUT /v1/meals/{id}", httpx.Chain(
		http.HandlerFunc(cfg.Meals.Update),
		authn,
		httpx.RateLimitByUser(httpx.ModerateLimit),
	))

	// Grocery list.
	mux.Handle("GET /v1/groceries", httpx.Chain(
		http.HandlerFunc(cfg.Groceries.List),
		authn,
		httpx.RateLimitByUser(httpx.LenientLimit),
	))
	mux.Handle("POST /v1/groceries", httpx.Chain(
		http.HandlerFunc(cfg.Groceries.Add),
		authn,
		httpx.RateLimitByUser(httpx.ModerateLimit),
	))
	mux.Handle("DELETE /v1/groceries/{id}", httpx.Chain(
		http.HandlerFunc(cfg.Groceries.Delete),
		authn,
		httpx.RateLimitByUser(httpx.ModerateLimit),
	))

	// Probes stay unauthenticated.
	mux.HandleFunc("GET /livez", cfg.Health.Livez)
	mux.HandleFunc("GET /readyz", cfg.Health.Readyz)

	return httpx.Chain(mux, slogx.HTTPMiddleware(cfg.Logger))
}
