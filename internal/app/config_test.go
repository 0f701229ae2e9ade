package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PANTRY_TOKEN_SECRET", "0123456789abcdef0123456789abcdef")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Addr())
	require.Equal(t, 168*time.Hour, cfg.TokenTTL)
	require.Equal(t, "pantryd", cfg.Issuer)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("PANTRY_TOKEN_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_ShortSecret(t *testing.T) {
	t.Setenv("PANTRY_TOKEN_SECRET", "too-short")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PANTRY_TOKEN_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("PORT", "9999")
	t.Setenv("PANTRY_TOKEN_TTL", "1h")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ":9999", cfg.Addr())
	require.Equal(t, time.Hour, cfg.TokenTTL)
}
