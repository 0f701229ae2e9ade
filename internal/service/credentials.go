package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/pantrybook/pantry/internal/domain"
	"github.com/pantrybook/pantry/internal/store"
	"github.com/pantrybook/pantry/pkg/cryptox"
)

// CredentialVerifier is the local verification strategy: it authenticates an
// email/password pair against the credential store. Read-only; safe for
// concurrent use.
type CredentialVerifier struct {
	Store store.Store
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// dummyVerifyHash is a throwaway argon2id blob verified on the unknown-email
// path so that path costs roughly the same as a wrong-password check.
func dummyVerifyHash() string {
	dummyHashOnce.Do(func() {
		dummyHash, _ = cryptox.HashPassword("decoy-password-for-timing")
	})
	return dummyHash
}

// Verify looks up the user by normalized email and checks the password.
// Unknown email and wrong password both return ErrInvalidCredentials.
func (v *CredentialVerifier) Verify(ctx context.Context, email, password string) (domain.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return domain.User{}, ErrInvalidInput
	}

	user, err := v.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a hash verification anyway so the latency profile does
			// not reveal whether the email exists.
			_ = cryptox.VerifyPassword(password, dummyVerifyHash())
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// NormalizeEmail lowercases and trims the login identity. Applied everywhere
// an email crosses into the core so lookups and uniqueness agree.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
