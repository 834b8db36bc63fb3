package auth

import (
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"JobPortal-backend/internal/database"
	"JobPortal-backend/internal/utilities"
)

func TestLocalLogin_Admin(t *testing.T) {
	token, err := GetAccessToken(t, testDB, database.TestAdminUsername, database.TestSeedPassword)
	require.NoError(t, err)

	parsed, err := ValidatedToken(token)
	require.NoError(t, err)
	claims := parsed.Claims.(*jwt.RegisteredClaims)
	assert.Equal(t, database.TestAdminUser.ID.String(), claims.Subject)
}

func TestLocalLogin_WrongPassword(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)
	rec, resp, err := utilities.SimulateAPICall(handler.LocalLoginHandler, "/auth/login", http.MethodPost, map[string]string{
		"username": database.TestAdminUsername,
		"password": "wrong",
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Username or password is incorrect", resp["message"])
}

func TestLocalLogin_UnknownUser(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)
	rec, _, err := utilities.SimulateAPICall(handler.LocalLoginHandler, "/auth/login", http.MethodPost, map[string]string{
		"username": "nobody",
		"password": "whatever",
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLocalLogin_MissingFields(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)
	rec, resp, err := utilities.SimulateAPICall(handler.LocalLoginHandler, "/auth/login", http.MethodPost, map[string]string{
		"username": "only-username",
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username or password is not provided", resp["message"])
}
