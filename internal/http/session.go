package httpapi

import (
	"net/http"

	"github.com/pantrybook/pantry/internal/service"
	"github.com/pantrybook/pantry/pkg/api"
	"github.com/pantrybook/pantry/pkg/httpx"
)

// SessionHandler serves the unauthenticated session surface plus the
// token-gated refresh/logout pair.
type SessionHandler struct {
	Sessions *service.SessionService
}

// SignUp handles POST /v1/session/signup.
func (h *SessionHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req api.SignUpRequest
	if err := decodeJSON(w, r, &req); err != nil {
		api.ErrInvalidInput.WriteError(w)
		return
	}

	user, err := h.Sessions.SignUp(r.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, api.ProfileResponse{
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}

// Login handles POST /v1/session/login.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		api.ErrInvalidInput.WriteError(w)
		return
	}

	token, err := h.Sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, api.TokenResponse{AuthToken: token})
}

// Refresh handles POST /v1/session/refresh. The bearer middleware has already
// verified the presented token; this mints a replacement with a fresh window.
func (h *SessionHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		api.ErrUnauthenticated.WriteError(w)
		return
	}

	token, err := h.Sessions.Refresh(r.Context(), claims)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, api.TokenResponse{AuthToken: token})
}

// Logout handles POST /v1/session/logout. Stateless tokens mean there is
// nothing to revoke; the endpoint acknowledges and the client discards.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Logout(r.Context())
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}
