package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	id := uuid.New()
	signed, claims, err := GenerateStandardToken(id)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.Subject)
	assert.Equal(t, JwtIssuer, claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)

	token, err := ValidatedToken(signed)
	require.NoError(t, err)
	assert.True(t, token.Valid)
	parsed := token.Claims.(*jwt.RegisteredClaims)
	assert.Equal(t, id.String(), parsed.Subject)
}

func TestValidatedToken_Expired(t *testing.T) {
	signed, _, err := GenerateTokenWithDuration(uuid.New(), -time.Minute)
	require.NoError(t, err)

	_, err = ValidatedToken(signed)
	assert.Error(t, err)
}

func TestValidatedToken_WrongIssuer(t *testing.T) {
	key, _ := signingKey()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(key)
	require.NoError(t, err)

	_, err = ValidatedToken(signed)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}

func TestValidatedToken_WrongKey(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    JwtIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("not-the-key"))
	require.NoError(t, err)

	_, err = ValidatedToken(signed)
	assert.Error(t, err)
}
