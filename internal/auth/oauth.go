// Package auth contains handler relate to sign in, sign out and session tokens
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"JobPortal-backend/internal/config"
	"JobPortal-backend/internal/database"
	"JobPortal-backend/internal/model"
	"JobPortal-backend/internal/utilities"
)

// OauthLoginHandler struct holds the database connection and OAuth2 configuration for handling OAuth login.
type OauthLoginHandler struct {
	DB               *database.DBinstanceStruct
	OauthConfig      *oauth2.Config
	UserInfoEndpoint string
}

type code struct {
	Code string `json:"code" binding:"required"`
}

// NewGoogleOauthConfig builds the Google OAuth2 client configuration.
func NewGoogleOauthConfig(cfg config.AuthConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
			"openid",
		},
		Endpoint:    google.Endpoint,
		RedirectURL: cfg.RedirectURL,
	}
}

// NewOauthLoginHandler creates a new instance of OauthLoginHandler with the provided database connection and OAuth2 configuration.
func NewOauthLoginHandler(db *database.DBinstanceStruct, oauthConfig *oauth2.Config, userInfoEndpoint string) *OauthLoginHandler {
	return &OauthLoginHandler{
		DB:               db,
		OauthConfig:      oauthConfig,
		UserInfoEndpoint: userInfoEndpoint,
	}
}

func (h *OauthLoginHandler) getUserInfo(c *gin.Context) (model.GoogleUserInfo, error) {
	var code code
	var uInfo model.GoogleUserInfo

	if err := c.ShouldBindJSON(&code); err != nil {
		utilities.Fail(c, http.StatusBadRequest, fmt.Sprintf("No authorization code provided: %v", err.Error()))
		return uInfo, err
	}

	ctx := c.Request.Context()
	token, err := h.OauthConfig.Exchange(ctx, code.Code)
	if err != nil {
		utilities.Fail(c, http.StatusBadRequest, fmt.Sprintf("Failed to receive token: %v", err.Error()))
		return uInfo, err
	}

	resp, err := h.OauthConfig.Client(ctx, token).Get(h.UserInfoEndpoint)
	if err != nil {
		utilities.Fail(c, http.StatusBadRequest, fmt.Sprintf("Failed to fetch user information: %v", err.Error()))
		return uInfo, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		utilities.Fail(c, http.StatusBadRequest, fmt.Sprintf("Failed to fetch user information: status=%d body=%s", resp.StatusCode, string(bodyBytes)))
		return uInfo, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&uInfo); err != nil {
		utilities.Fail(c, http.StatusBadRequest, fmt.Sprintf("Failed to decode user info: %v", err.Error()))
		return uInfo, err
	}
	return uInfo, nil
}

// GoogleLoginHandler exchanges a Google authorization code and signs the user in.
// Only emails registered through an invitation token may sign in.
// @Summary Sign in with Google
// @Description Exchanges the code, then admits the user only when the Google email is registered
// @Tags Auth
// @Accept json
// @Produce json
// @Param Code body code true "Authentication code from google"
// @Success 200 {object} utilities.Response[model.LoginResponse] "Login success"
// @Failure 400 {object} utilities.ErrorResponse "Fail to receive token or fetch user info"
// @Failure 403 {object} utilities.ErrorResponse "Email is not registered"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/google [post]
func (h *OauthLoginHandler) GoogleLoginHandler(c *gin.Context) {
	uInfo, err := h.getUserInfo(c)
	if err != nil {
		LogAuthAttempt(c.Request.Context(), slog.LevelWarn, "Google", "Fail", "", err.Error())
		return
	}

	email := model.NormalizeEmail(uInfo.Email)
	if email == "" {
		LogAuthAttempt(c.Request.Context(), slog.LevelWarn, "Google", "Fail", uInfo.GID, "no email in profile")
		utilities.Fail(c, http.StatusForbidden, "Access denied: email is not registered")
		return
	}

	var user model.User
	err = h.DB.Where("email = ?", email).First(&user).Error
	switch {
	case database.IsNotFound(err):
		LogAuthAttempt(c.Request.Context(), slog.LevelWarn, "Google", "Fail", email, "email not registered")
		utilities.Fail(c, http.StatusForbidden, "Access denied: email is not registered")
		return
	case err != nil:
		slog.Error("Failed to look up user", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Database error")
		return
	}

	if user.Name == "" && uInfo.Name != "" {
		if err := h.DB.Model(&user).Update("name", uInfo.Name).Error; err != nil {
			slog.Error("Failed to store profile name", "error", err)
		}
	}

	accessToken, _, err := GenerateStandardToken(user.ID)
	if err != nil {
		utilities.Fail(c, http.StatusInternalServerError, fmt.Sprintf("Failed to generate access token: %s", err.Error()))
		return
	}

	LogAuthAttempt(c.Request.Context(), slog.LevelInfo, "Google", "Success", email, "")
	utilities.OK(c, http.StatusOK, "Login successful", model.LoginResponse{
		User:        user,
		AccessToken: accessToken,
	})
}

// Callback function in Go retrieves a query parameter named "code" from the request and returns it
// in a JSON response.
// @Summary Retrieves a query parameter named "code" from the request and returns it in a JSON response
// @Tags Auth
// @Produce json
// @Param Code query string false "Authentication code from google"
// @Success 200 {object} utilities.Response[code]
// @Router /auth/google/callback [get]
func (h *OauthLoginHandler) Callback(c *gin.Context) {
	utilities.OK(c, http.StatusOK, "Authorization code received", code{Code: c.Query("code")})
}
