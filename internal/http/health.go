package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/pantrybook/pantry/internal/store"
	"github.com/pantrybook/pantry/pkg/api"
	"github.com/pantrybook/pantry/pkg/httpx"
	"github.com/pantrybook/pantry/pkg/tokenx"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	Store   store.Store
	Codec   *tokenx.Codec
	Version string
	Started time.Time
}

// Livez handles GET /livez: the process is up and serving.
func (h *HealthHandler) Livez(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, api.HealthResponse{
		Status:  "ok",
		Uptime:  time.Since(h.Started).Round(time.Second).String(),
		Version: h.Version,
	})
}

// Readyz handles GET /readyz: the database answers and the signer is usable.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := api.HealthChecks{Database: "ok", Signer: "ok"}
	status := "ok"
	code := http.StatusOK

	if err := h.Store.Ping(ctx); err != nil {
		checks.Database = "unavailable"
		status = "unavailable"
		code = http.StatusServiceUnavailable
	}
	if !h.Codec.Ready() {
		checks.Signer = "unavailable"
		status = "unavailable"
		code = http.StatusServiceUnavailable
	}

	httpx.WriteJSON(w, code, api.HealthResponse{
		Status:  status,
		Uptime:  time.Since(h.Started).Round(time.Second).String(),
		Version: h.Version,
		Checks:  &checks,
	})
}
