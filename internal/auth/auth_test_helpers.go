package auth

import (
	"fmt"
	"net/http"
	"testing"

	"JobPortal-backend/internal/database"
	"JobPortal-backend/internal/model"
	"JobPortal-backend/internal/utilities"
)

// GetAccessToken is a helper function to obtain an access token for an admin by simulating a login API call.
// It takes the testing object, database connection, username, and password as parameters.
// It returns the access token as a string and any error encountered during the process.
func GetAccessToken(
	t *testing.T,
	db *database.DBinstanceStruct,
	username string,
	password string,
) (string, error) {
	t.Helper()
	handler := NewLocalAuthHandler(db)
	rec, resp, err := utilities.SimulateAPICall(handler.LocalLoginHandler, "/login", http.MethodPost, map[string]string{
		"username": username,
		"password": password,
	}, nil)
	if err != nil {
		return "", err
	}
	if rec.Code != http.StatusOK {
		return "", fmt.Errorf("login Failed: status %d, body: %s", rec.Code, rec.Body.String())
	}
	data, ok := resp["data"].(map[string]interface{})
	if !ok || data["access_token"] == nil {
		return "", fmt.Errorf("login Failed: no access_token in response: %s", rec.Body.String())
	}
	return data["access_token"].(string), nil
}

// GetUserAccessToken issues a token for a Google-only user without going through the provider.
func GetUserAccessToken(t *testing.T, user model.User) string {
	t.Helper()
	token, _, err := GenerateStandardToken(user.ID)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}
