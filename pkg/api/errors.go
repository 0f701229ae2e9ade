package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes returned in the "error" field. Authentication failures are
// deliberately collapsed into one code so callers cannot distinguish "no
// such user" from "wrong password" from "bad token".
const (
	ErrorCodeInvalidInput    = "invalid_input"
	ErrorCodeInvalidCreds    = "invalid_credentials"
	ErrorCodeUnauthenticated = "unauthenticated"
	ErrorCodeEmailTaken      = "email_taken"
	ErrorCodeNotFound        = "not_found"
	ErrorCodeServerError     = "server_error"
)

// Error is the JSON error envelope. It implements the error interface and is
// used both to write HTTP responses and to represent decoded errors in
// client code.
type Error struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code
	Code string `json:"error"`

	// Description is a human-readable description
	Description string `json:"error_description"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this error to an HTTP response writer.
func (e *Error) WriteError(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

var (
	// ErrInvalidInput is returned when the request is malformed or missing
	// required fields. Caller-fixable.
	ErrInvalidInput = &Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidInput,
		Description: "the request is malformed or missing required fields",
	}

	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = &Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCreds,
		Description: "invalid credentials",
	}

	// ErrUnauthenticated covers every bearer-token failure: missing header,
	// malformed token, bad signature, expiry.
	ErrUnauthenticated = &Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthenticated,
		Description: "authentication required",
	}

	// ErrEmailTaken is returned by sign-up when the email is registered.
	ErrEmailTaken = &Error{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeEmailTaken,
		Description: "email is already registered",
	}

	// ErrNotFound is returned when a record does not exist or belongs to a
	// different user.
	ErrNotFound = &Error{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "record not found",
	}

	// ErrServerError is the generic internal failure. Never used for
	// authentication outcomes.
	ErrServerError = &Error{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)
