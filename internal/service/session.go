package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pantrybook/pantry/internal/domain"
	"github.com/pantrybook/pantry/internal/store"
	"github.com/pantrybook/pantry/pkg/cryptox"
	"github.com/pantrybook/pantry/pkg/idx"
	"github.com/pantrybook/pantry/pkg/slogx"
	"github.com/pantrybook/pantry/pkg/tokenx"
)

// SessionService orchestrates sign-up, login, refresh and logout. It is
// stateless across calls: no session records, no token cache, no revocation
// list. Concurrent logins and refreshes for the same user are all valid
// independently until each token's own expiry.
type SessionService struct {
	Store       store.Store
	Codec       *tokenx.Codec
	Credentials *CredentialVerifier
	Issuer      string
	TokenTTL    time.Duration
}

// SignUp validates the profile fields, hashes the password and persists the
// new user together with an empty meal slot per weekday. Returns the created
// user; the caller must never expose the hash.
func (s *SessionService) SignUp(ctx context.Context, email, password, firstName, lastName string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	email = NormalizeEmail(email)
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	if email == "" || password == "" || firstName == "" || lastName == "" {
		return domain.User{}, ErrInvalidInput
	}
	if !strings.Contains(email, "@") {
		return domain.User{}, ErrInvalidInput
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		if errors.Is(err, cryptox.ErrEmptyPassword) {
			return domain.User{}, ErrInvalidInput
		}
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// User row and seeded meal slots land atomically. The unique index on
	// users.email is the duplicate-email authority; we map its violation
	// rather than racing a read-then-write check.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			return err
		}
		for _, day := range domain.WeekDays {
			slot := domain.MealItem{
				ID:        idx.New().String(),
				UserID:    user.ID,
				Day:       day,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := tx.Meals().CreateMeal(ctx, slot); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}

	log.Info("user signed up", "user_id", user.ID)
	return user, nil
}

// Login authenticates the credential pair via the local strategy and mints a
// fresh token with expiry = now + TokenTTL.
func (s *SessionService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.Credentials.Verify(ctx, email, password)
	if err != nil {
		return "", err
	}

	return s.mint(user)
}

// Refresh re-mints a token for an already verified claims handle. The
// identity fields are re-read from the user record (which the core never
// mutates, so they match the presented claims byte for byte) and the expiry
// restarts at now + TokenTTL. The window is never extended from the old
// expiry, so a near-expiry token refreshed over and over cannot stretch the
// original issuance indefinitely.
func (s *SessionService) Refresh(ctx context.Context, claims tokenx.Claims) (string, error) {
	user, err := s.Store.Users().GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrUnauthenticated
		}
		return "", err
	}

	return s.mint(user)
}

// Logout acknowledges the client's intent to end the session. There is no
// server-side token state to invalidate; the client discards the token.
func (s *SessionService) Logout(ctx context.Context) {
	slogx.FromContext(ctx).Debug("logout acknowledged")
}

func (s *SessionService) mint(user domain.User) (string, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = tokenx.DefaultSessionTTL
	}

	claims := tokenx.NewSessionClaims(
		user.ID, user.Email, user.FirstName, user.LastName,
		ttl, s.Issuer, time.Now().UTC(),
	)
	return s.Codec.Encode(claims)
}
