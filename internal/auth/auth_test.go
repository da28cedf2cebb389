package auth

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"oneasy-portal/internal/viewmode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	tok, err := issuer.Issue("64b7f0c2a1b2c3d4e5f60718", viewmode.RoleAdmin)
	require.NoError(t, err)

	claims, err := issuer.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", claims.UID)
	assert.Equal(t, viewmode.RoleAdmin, claims.Role)
}

func TestTokenRejectsOtherSecretAndExpiry(t *testing.T) {
	tok, err := NewTokenIssuer("one", time.Hour).Issue("u1", viewmode.RoleClient)
	require.NoError(t, err)

	_, err = NewTokenIssuer("two", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	issuer := NewTokenIssuer("one", time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := issuer.Issue("u1", viewmode.RoleClient)
	require.NoError(t, err)
	_, err = NewTokenIssuer("one", time.Minute).Parse(old)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "secret1"))
	assert.False(t, CheckPassword(hash, "secret2"))
}

func TestURLSigner(t *testing.T) {
	s := NewURLSigner("k", "https://api.oneasy.in/", time.Minute)
	link, exp, err := s.Sign("doc://abc/pan.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://api.oneasy.in/documents/view?token="))
	assert.WithinDuration(t, time.Now().Add(time.Minute), exp, 5*time.Second)

	u, err := url.Parse(link)
	require.NoError(t, err)
	ref, err := s.Verify(u.Query().Get("token"))
	require.NoError(t, err)
	assert.Equal(t, "doc://abc/pan.pdf", ref)

	// access tokens are not document tokens
	access, err := NewTokenIssuer("k", time.Hour).Issue("u1", viewmode.RoleClient)
	require.NoError(t, err)
	_, err = s.Verify(access)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewURLSigner("k", "", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	link, _, err = expired.Sign("doc://x/y")
	require.NoError(t, err)
	u, _ = url.Parse(link)
	_, err = s.Verify(u.Query().Get("token"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}
