package auth

import (
	"testing"

	"maison/middleware"
	"maison/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	user := models.User{
		UserID:   "u1",
		Username: "colette",
		Role:     []string{"customer", "admin"},
	}

	token, err := generateAccessToken(user)
	require.NoError(t, err)

	claims, err := middleware.ValidateJWT("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "colette", claims.Username)
	assert.Equal(t, []string{"customer", "admin"}, claims.Role)
}

func TestRefreshTokenHashing(t *testing.T) {
	tok1, err := generateRefreshToken()
	require.NoError(t, err)
	tok2, err := generateRefreshToken()
	require.NoError(t, err)

	assert.NotEqual(t, tok1, tok2)
	assert.Len(t, tok1, 64)

	// only the hash is ever stored
	assert.Equal(t, hashToken(tok1), hashToken(tok1))
	assert.NotEqual(t, hashToken(tok1), hashToken(tok2))
	assert.NotEqual(t, tok1, hashToken(tok1))
}
