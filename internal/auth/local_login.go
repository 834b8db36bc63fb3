package auth

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"JobPortal-backend/internal/database"
	"JobPortal-backend/internal/model"
	"JobPortal-backend/internal/utilities"
)

// LocalAuthHandler holds DB reference for handler methods.
type LocalAuthHandler struct {
	DB *database.DBinstanceStruct
}

// NewLocalAuthHandler creates a new instance of LocalAuthHandler with the provided database connection.
func NewLocalAuthHandler(db *database.DBinstanceStruct) *LocalAuthHandler {
	return &LocalAuthHandler{
		DB: db,
	}
}

type loginInfo struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LocalLoginHandler function handles admin login by receiving username and password
// @Summary Admin login with username and password
// @Description Username must exist and password match
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body loginInfo true "Credentials for login"
// @Success 200 {object} utilities.Response[model.LoginResponse]
// @Failure 400 {object} utilities.ErrorResponse "Info provided not met the condition"
// @Failure 401 {object} utilities.ErrorResponse "Username not exist or password incorrect"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/login [post]
func (lh *LocalAuthHandler) LocalLoginHandler(c *gin.Context) {
	var info loginInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		utilities.Fail(c, http.StatusBadRequest, "Username or password is not provided")
		return
	}

	var user model.User
	err := lh.DB.Where("username = ?", info.Username).First(&user).Error

	switch {
	case database.IsNotFound(err):
		LogAuthAttempt(c.Request.Context(), slog.LevelWarn, "Local", "Fail", info.Username, "unknown username")
		utilities.Fail(c, http.StatusUnauthorized, "Username or password is incorrect")
		return
	case err != nil:
		slog.Error("Failed to look up user", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Database error")
		return
	}

	if user.Password == "" || !utilities.VerifyPassword(user.Password, info.Password) {
		LogAuthAttempt(c.Request.Context(), slog.LevelWarn, "Local", "Fail", info.Username, "wrong password")
		utilities.Fail(c, http.StatusUnauthorized, "Username or password is incorrect")
		return
	}

	accessToken, _, err := GenerateStandardToken(user.ID)
	if err != nil {
		utilities.Fail(c, http.StatusInternalServerError, fmt.Sprintf("Failed to generate access token: %s", err.Error()))
		return
	}

	LogAuthAttempt(c.Request.Context(), slog.LevelInfo, "Local", "Success", info.Username, "")
	utilities.OK(c, http.StatusOK, "Login successful", model.LoginResponse{
		User:        user,
		AccessToken: accessToken,
	})
}
