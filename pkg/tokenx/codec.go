// Package tokenx encodes and decodes signed session tokens. One fixed
// secret, one fixed algorithm (HS256): tokens signed any other way are
// rejected before any payload field is trusted.
package tokenx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the smallest signing secret the codec accepts. HS256
// secrets shorter than the hash output weaken the MAC.
const MinSecretLength = 32

var (
	ErrMalformed        = errors.New("tokenx: malformed token")
	ErrSignatureInvalid = errors.New("tokenx: invalid signature")
	ErrExpired          = errors.New("tokenx: token expired")

	errShortSecret = errors.New("tokenx: signing secret too short")
)

// Verifier validates a token string and returns its claims if legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// Codec signs and verifies session tokens with a single process-wide
// secret. Encode and Decode are pure functions of their inputs plus the
// secret; the codec holds no mutable state and is safe for concurrent use.
type Codec struct {
	secret []byte
	issuer string
	parser *jwt.Parser
}

// NewCodec builds a codec from the configured signing secret. The secret is
// process-wide configuration loaded once at startup; it must never appear in
// source or logs.
func NewCodec(secret []byte, issuer string) (*Codec, error) {
	if len(secret) < MinSecretLength {
		return nil, errShortSecret
	}

	return &Codec{
		secret: secret,
		issuer: issuer,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

// Encode serializes the claims and signs them with the fixed secret.
func (c *Codec) Encode(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("tokenx: sign: %w", err)
	}
	return signed, nil
}

// Decode parses the token, verifies the signature over the payload, and only
// then validates expiry. Failures map onto the package sentinels; the header
// alg is pinned to HS256 so an attacker cannot pick a different algorithm.
func (c *Codec) Decode(tokenStr string) (Claims, error) {
	claims := &Claims{}

	token, err := c.parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		return Claims{}, mapParseError(err)
	}
	if !token.Valid {
		return Claims{}, ErrSignatureInvalid
	}

	if c.issuer != "" && claims.Issuer != c.issuer {
		return Claims{}, ErrSignatureInvalid
	}
	// Strict window: expiry equal to "now" counts as expired.
	if err := claims.ValidateExpiry(); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}

// Verify implements the Verifier interface.
func (c *Codec) Verify(tokenStr string) (Claims, error) {
	return c.Decode(tokenStr)
}

// Ready reports whether the codec holds a usable secret. Used by the
// readiness probe.
func (c *Codec) Ready() bool {
	return c != nil && len(c.secret) >= MinSecretLength
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrSignatureInvalid
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		// Covers algorithm confusion: header claims a method we don't accept.
		return ErrSignatureInvalid
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	default:
		return ErrMalformed
	}
}
