package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters, per the OWASP minimum recommendation.
const (
	memory      = 19 * 1024 // KiB (19 MiB)
	iterations  = 2
	parallelism = 1
	keyLength   = 32
	saltLength  = 16
)

var (
	// ErrEmptyPassword rejects hashing an empty plaintext.
	ErrEmptyPassword = errors.New("cryptox: empty password")

	// ErrMismatch is the single failure mode of VerifyPassword. A malformed
	// stored hash produces the same error as a wrong password so callers
	// cannot tell the two apart.
	ErrMismatch = errors.New("cryptox: password does not match")
)

// HashPassword derives a PHC-format Argon2id hash with a fresh random salt.
// The salt and parameters are embedded in the returned string, so
// verification needs nothing beyond the blob itself.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("cryptox: generate salt: %w", err)
	}

	hash := argon2.IDKey(
		[]byte(password+GetPepper()),
		salt,
		iterations,
		memory,
		parallelism,
		keyLength,
	)

	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory,
		iterations,
		parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// VerifyPassword recomputes the hash using the salt and parameters embedded
// in encodedHash and compares in constant time. Every failure path returns
// ErrMismatch.
func VerifyPassword(password, encodedHash string) error {
	salt, expected, params, ok := parsePHC(encodedHash)
	if !ok {
		return ErrMismatch
	}

	computed := argon2.IDKey(
		[]byte(password+GetPepper()),
		salt,
		params.iterations,
		params.memory,
		params.parallelism,
		uint32(len(expected)), // #nosec G115 - hash lengths are tiny
	)

	if subtle.ConstantTimeCompare(computed, expected) == 1 {
		return nil
	}
	return ErrMismatch
}

type phcParams struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
}

// parsePHC splits "$argon2id$v=19$m=X,t=Y,p=Z$salt$hash" into its parts.
func parsePHC(encoded string) (salt, hash []byte, p phcParams, ok bool) {
	parts := make([]string, 0, 6)
	start := 0
	for i := range len(encoded) {
		if encoded[i] == '$' {
			parts = append(parts, encoded[start:i])
			start = i + 1
		}
	}
	parts = append(parts, encoded[start:])

	// Expected: ["", "argon2id", "v=19", "m=X,t=Y,p=Z", salt, hash]
	if len(parts) != 6 || parts[1] != "argon2id" || parts[2] != "v=19" {
		return nil, nil, phcParams{}, false
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &p.parallelism); err != nil {
		return nil, nil, phcParams{}, false
	}

	var err error
	if salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, nil, phcParams{}, false
	}
	if hash, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(hash) == 0 {
		return nil, nil, phcParams{}, false
	}

	return salt, hash, p, true
}
