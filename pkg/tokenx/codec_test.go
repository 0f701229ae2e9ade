package tokenx_test

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pantrybook/pantry/pkg/tokenx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "pantryd-test"

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestCodec(t *testing.T) *tokenx.Codec {
	t.Helper()
	codec, err := tokenx.NewCodec(testSecret, testIssuer)
	require.NoError(t, err)
	return codec
}

func sessionClaims(ttl time.Duration) tokenx.Claims {
	return tokenx.NewSessionClaims(
		"01J0000000000000000000USER",
		"alice@example.com",
		"Alice", "Smith",
		ttl, testIssuer, time.Now().UTC(),
	)
}

func TestNewCodec_RejectsShortSecret(t *testing.T) {
	_, err := tokenx.NewCodec([]byte("short"), testIssuer)
	require.Error(t, err)
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := newTestCodec(t)
	claims := sessionClaims(time.Hour)

	token, err := codec.Encode(claims)
	require.NoError(t, err)

	// Three dot-joined URL-safe segments
	require.Len(t, strings.Split(token, "."), 3)

	decoded, err := codec.Decode(token)
	require.NoError(t, err)
	require.Equal(t, claims.UserID, decoded.UserID)
	require.Equal(t, claims.Email, decoded.Email)
	require.Equal(t, claims.FirstName, decoded.FirstName)
	require.Equal(t, claims.LastName, decoded.LastName)
	require.Equal(t, claims.Email, decoded.Subject)
	require.Equal(t, claims.ExpiresAt.Unix(), decoded.ExpiresAt.Unix())
}

func TestCodec_Decode_Malformed(t *testing.T) {
	codec := newTestCodec(t)

	for _, tok := range []string{"", "garbage", "a.b", "not.a.jwt"} {
		_, err := codec.Decode(tok)
		require.ErrorIs(t, err, tokenx.ErrMalformed, "token %q", tok)
	}
}

func TestCodec_Decode_TamperedPayload(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Encode(sessionClaims(time.Hour))
	require.NoError(t, err)

	// Swap out a claim value but keep the original signature. The altered
	// claims must never come back silently.
	parts := strings.Split(token, ".")
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	forged := strings.Replace(string(payload), "alice@example.com", "mallory@example.com", -1)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(forged))

	_, err = codec.Decode(strings.Join(parts, "."))
	require.ErrorIs(t, err, tokenx.ErrSignatureInvalid)
}

func TestCodec_Decode_WrongSecret(t *testing.T) {
	codec := newTestCodec(t)

	other, err := tokenx.NewCodec([]byte("ffffffffffffffffffffffffffffffff"), testIssuer)
	require.NoError(t, err)

	// Identical claims, different secret
	token, err := other.Encode(sessionClaims(time.Hour))
	require.NoError(t, err)

	_, err = codec.Decode(token)
	require.ErrorIs(t, err, tokenx.ErrSignatureInvalid)
}

func TestCodec_Decode_WrongAlgorithm(t *testing.T) {
	codec := newTestCodec(t)
	claims := sessionClaims(time.Hour)

	t.Run("HS512 with the right secret", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(testSecret)
		require.NoError(t, err)

		_, err = codec.Decode(token)
		require.ErrorIs(t, err, tokenx.ErrSignatureInvalid)
	})

	t.Run("unsigned none token", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = codec.Decode(token)
		require.ErrorIs(t, err, tokenx.ErrSignatureInvalid)
	})
}

func TestCodec_Decode_Expired(t *testing.T) {
	codec := newTestCodec(t)

	t.Run("past expiry", func(t *testing.T) {
		token, err := codec.Encode(sessionClaims(-10 * time.Second))
		require.NoError(t, err)

		_, err = codec.Decode(token)
		require.ErrorIs(t, err, tokenx.ErrExpired)
	})

	t.Run("expiry equal to now is expired", func(t *testing.T) {
		// Strictly exclusive boundary
		token, err := codec.Encode(sessionClaims(0))
		require.NoError(t, err)

		_, err = codec.Decode(token)
		require.ErrorIs(t, err, tokenx.ErrExpired)
	})
}

func TestCodec_Decode_IssuerMismatch(t *testing.T) {
	codec := newTestCodec(t)

	other, err := tokenx.NewCodec(testSecret, "some-other-service")
	require.NoError(t, err)

	token, err := other.Encode(tokenx.NewSessionClaims(
		"u1", "bob@example.com", "Bob", "Jones",
		time.Hour, "some-other-service", time.Now().UTC(),
	))
	require.NoError(t, err)

	_, err = codec.Decode(token)
	require.ErrorIs(t, err, tokenx.ErrSignatureInvalid)
}

func TestValidateExpiry(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid", func(t *testing.T) {
		c := tokenx.Claims{RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		}}
		require.NoError(t, c.ValidateExpiry())
	})

	t.Run("expired", func(t *testing.T) {
		c := tokenx.Claims{RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
		}}
		require.ErrorIs(t, c.ValidateExpiry(), tokenx.ErrExpired)
	})

	t.Run("missing expiry", func(t *testing.T) {
		c := tokenx.Claims{}
		require.ErrorIs(t, c.ValidateExpiry(), tokenx.ErrMalformed)
	})
}
