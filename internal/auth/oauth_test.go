package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"JobPortal-backend/internal/database"
	"JobPortal-backend/internal/model"
	"JobPortal-backend/internal/utilities"
)

func TestGoogleLogin_RegisteredEmail(t *testing.T) {
	email := "google.user@example.com"
	existing := model.User{Email: &email, Role: model.RoleUser}
	require.NoError(t, testDB.Create(&existing).Error)

	mockUser := model.GoogleUserInfo{GID: "google_registered", Email: "Google.User@Example.com", Name: "Google User"}
	mockServer := newMockOAuth2Server(mockUser)
	defer mockServer.Close()

	handler := NewOauthLoginHandler(testDB, mockServer.Config, mockServer.MockInfoEndpoint)
	rec, resp, err := utilities.SimulateAPICall(handler.GoogleLoginHandler, "/auth/google", http.MethodPost,
		map[string]string{"code": mockServer.authCode(mockUser.GID)}, nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["success"])
	assert.True(t, mockServer.isExchanged(mockUser.GID))

	data := resp["data"].(map[string]interface{})
	token, err := ValidatedToken(data["access_token"].(string))
	require.NoError(t, err)
	assert.True(t, token.Valid)

	var updated model.User
	require.NoError(t, testDB.First(&updated, "id = ?", existing.ID).Error)
	assert.Equal(t, "Google User", updated.Name)
}

func TestGoogleLogin_UnregisteredEmailDenied(t *testing.T) {
	mockUser := model.GoogleUserInfo{GID: "google_stranger", Email: "stranger@example.com"}
	mockServer := newMockOAuth2Server(mockUser)
	defer mockServer.Close()

	handler := NewOauthLoginHandler(testDB, mockServer.Config, mockServer.MockInfoEndpoint)
	rec, resp, err := utilities.SimulateAPICall(handler.GoogleLoginHandler, "/auth/google", http.MethodPost,
		map[string]string{"code": mockServer.authCode(mockUser.GID)}, nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Access denied: email is not registered", resp["message"])

	var count int64
	testDB.Model(&model.User{}).Where("email = ?", "stranger@example.com").Count(&count)
	assert.Zero(t, count, "sign in must never create a user")
}

func TestGoogleLogin_SeededApplicant(t *testing.T) {
	mockUser := model.GoogleUserInfo{GID: "google_seed", Email: database.TestApplicant1Mail}
	mockServer := newMockOAuth2Server(mockUser)
	defer mockServer.Close()

	handler := NewOauthLoginHandler(testDB, mockServer.Config, mockServer.MockInfoEndpoint)
	rec, resp, err := utilities.SimulateAPICall(handler.GoogleLoginHandler, "/auth/google", http.MethodPost,
		map[string]string{"code": mockServer.authCode(mockUser.GID)}, nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	user := resp["data"].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, database.TestApplicant1.ID.String(), user["id"])
	assert.Equal(t, "Alice Nguyen", user["name"])
}

func TestGoogleLogin_MissingCode(t *testing.T) {
	mockServer := newMockOAuth2Server()
	defer mockServer.Close()

	handler := NewOauthLoginHandler(testDB, mockServer.Config, mockServer.MockInfoEndpoint)
	rec, resp, err := utilities.SimulateAPICall(handler.GoogleLoginHandler, "/auth/google", http.MethodPost, map[string]string{}, nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["message"], "No authorization code provided")
}

func TestGoogleLogin_InvalidCode(t *testing.T) {
	mockServer := newMockOAuth2Server()
	defer mockServer.Close()

	handler := NewOauthLoginHandler(testDB, mockServer.Config, mockServer.MockInfoEndpoint)
	rec, resp, err := utilities.SimulateAPICall(handler.GoogleLoginHandler, "/auth/google", http.MethodPost,
		map[string]string{"code": "bogus"}, nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["message"], "Failed to receive token")
}

func TestCallback(t *testing.T) {
	handler := NewOauthLoginHandler(testDB, nil, "")
	rec, resp, err := utilities.SimulateAPICall(handler.Callback, "/auth/google/callback?code=abc", http.MethodGet, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc", resp["data"].(map[string]interface{})["code"])
}
