package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"oneasy-portal/internal/forms"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "MONGO_DB", "TOKEN_TTL", "SIGNED_URL_TTL", "PUBLIC_BASE_URL", "CORS_ORIGINS"} {
		t.Setenv(k, "")
	}
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := FromEnv()
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "oneasy", cfg.MongoDB)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 72*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 15*time.Minute, cfg.SignedURLTTL)
	assert.Equal(t, "http://localhost:8000", cfg.PublicBaseURL)
	assert.Equal(t, "*", cfg.CORSOrigins)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("SIGNED_URL_TTL", "not-a-duration")

	cfg := FromEnv()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 15*time.Minute, cfg.SignedURLTTL)
}

func TestLoadPackages(t *testing.T) {
	pkgs, err := LoadPackages("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPackages, pkgs)

	path := filepath.Join(t.TempDir(), "packages.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
packages:
  - id: gst-basic
    kind: gst
    name: GST Registration
    price: 1499
    features: [GSTIN application]
`), 0o600))
	pkgs, err = LoadPackages(path)
	require.NoError(t, err)
	require.Len(t, pkgs, 1)
	assert.Equal(t, forms.GST, pkgs[0].Kind)
	assert.Equal(t, int64(1499), pkgs[0].Price)

	require.NoError(t, os.WriteFile(path, []byte("packages:\n  - id: x\n    kind: llp\n"), 0o600))
	_, err = LoadPackages(path)
	assert.Error(t, err)
}
