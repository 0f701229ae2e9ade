package service

import "errors"

// Failure taxonomy for the session core. Credential and token failures are
// deliberately coarse: the same error covers "no such user" and "wrong
// password", and the same 401 covers every bad-token case, so nothing leaks
// about which part of a credential was wrong.
var (
	ErrInvalidInput       = errors.New("service: invalid input")
	ErrInvalidCredentials = errors.New("service: invalid credentials")
	ErrEmailTaken         = errors.New("service: email already registered")
	ErrUnauthenticated    = errors.New("service: unauthenticated")
	ErrNotFound           = errors.New("service: not found")
)
