package tokenx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the validity window for session tokens. A refresh
// restarts this window from the current time.
const DefaultSessionTTL = 7 * 24 * time.Hour

// Claims is the authenticated identity snapshot embedded in a session token.
// The identity fields are immutable once minted; a refresh copies them
// verbatim and only the expiry moves.
type Claims struct {
	jwt.RegisteredClaims

	// UserID is the opaque stable identifier of the user record.
	UserID string `json:"uid,omitempty"`

	// Email doubles as the login identity and the "sub" claim.
	Email string `json:"email,omitempty"`

	FirstName string `json:"given_name,omitempty"`
	LastName  string `json:"family_name,omitempty"`
}

// NewSessionClaims builds claims for a freshly authenticated user. The
// subject is the user's email, expiry is now+ttl.
func NewSessionClaims(
	userID, email, firstName, lastName string,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		UserID:    userID,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateExpiry enforces the token window strictly: a token whose expiry
// equals "now" is already expired.
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt == nil {
		return ErrMalformed
	}
	if !now.Before(c.ExpiresAt.Time) {
		return ErrExpired
	}

	return nil
}
