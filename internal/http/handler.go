// Package httpapi exposes the session core and the meal/grocery collaborators
// over HTTP. Routing uses net/http method patterns; cross-cutting concerns
// (request logging, rate limiting, bearer verification) are httpx middleware.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pantrybook/pantry/internal/service"
	"github.com/pantrybook/pantry/pkg/api"
	"github.com/pantrybook/pantry/pkg/slogx"
)

// maxBodyBytes caps request bodies well above any legitimate payload.
const maxBodyBytes = 1 << 20

// decodeJSON reads a JSON body into dst, rejecting unknown fields and
// trailing garbage.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected trailing data")
	}
	return nil
}

// writeServiceError maps the service error taxonomy onto the wire envelope.
// Anything unrecognized is a 500 and gets logged; authentication outcomes
// never fall through to it.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		api.ErrInvalidInput.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		api.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrEmailTaken):
		api.ErrEmailTaken.WriteError(w)
	case errors.Is(err, service.ErrUnauthenticated):
		api.ErrUnauthenticated.WriteError(w)
	case errors.Is(err, service.ErrNotFound):
		api.ErrNotFound.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		api.ErrServerError.WriteError(w)
	}
}
