package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientTokenRoundTrip(t *testing.T) {
	signed, exp, err := NewClientToken("secret-a", "1234")
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), exp, 5*time.Second)

	clientID, err := ParseClientToken("secret-a", signed)
	require.NoError(t, err)
	assert.Equal(t, "1234", clientID)
}

func TestClientTokenWrongSecret(t *testing.T) {
	signed, _, err := NewClientToken("secret-a", "1234")
	require.NoError(t, err)

	_, err = ParseClientToken("secret-b", signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAdminTokenRoundTrip(t *testing.T) {
	signed, _, err := NewAdminToken("admin-secret", 7, "studio@example.com")
	require.NoError(t, err)

	claims, err := ParseAdminToken("admin-secret", signed)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.ID)
	assert.Equal(t, "studio@example.com", claims.Email)
}

func TestTokenScopesDoNotCross(t *testing.T) {
	// Even with the same secret the claim shapes differ, so a client token
	// never yields an admin identity and vice versa.
	clientTok, _, err := NewClientToken("shared", "1234")
	require.NoError(t, err)
	adminTok, _, err := NewAdminToken("shared", 1, "studio@example.com")
	require.NoError(t, err)

	_, err = ParseAdminToken("shared", clientTok)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = ParseClientToken("shared", adminTok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	claims := jwt.MapClaims{
		"user": map[string]any{"clientId": "1234"},
		"exp":  time.Now().Add(-time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret-a"))
	require.NoError(t, err)

	_, err = ParseClientToken("secret-a", signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUnsignedTokenRejected(t *testing.T) {
	claims := jwt.MapClaims{
		"user": map[string]any{"clientId": "1234"},
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseClientToken("secret-a", signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
