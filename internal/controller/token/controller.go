// Package token provides HTTP handlers for single-use invitation tokens.
package token

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"

	"JobPortal-backend/internal/database"
	"JobPortal-backend/internal/model"
	"JobPortal-backend/internal/utilities"
)

// TokenController handles invitation token endpoints
type TokenController struct {
	DB *database.DBinstanceStruct
}

// NewTokenController creates a new instance of TokenController
func NewTokenController(db *database.DBinstanceStruct) *TokenController {
	return &TokenController{
		DB: db,
	}
}

type redeemInfo struct {
	Token string `json:"token" binding:"required"`
}

// Generate creates and stores a fresh invitation token.
func Generate(db *database.DBinstanceStruct) (model.Token, error) {
	value, err := utilities.RandomString(model.TokenLength)
	if err != nil {
		return model.Token{}, err
	}
	t := model.Token{Token: value}
	if err := db.Create(&t).Error; err != nil {
		return model.Token{}, err
	}
	return t, nil
}

// CreateToken generates a new invitation token
// @Summary Generate an invitation token
// @Tags Token
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 201 {object} utilities.Response[model.Token]
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Failed to create token"
// @Router /admin/tokens [post]
func (tc *TokenController) CreateToken(c *gin.Context) {
	t, err := Generate(tc.DB)
	if err != nil {
		slog.Error("Failed to create token", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Failed to create token")
		return
	}
	utilities.OK(c, http.StatusCreated, "Token created successfully", t)
}

// ListTokens returns every outstanding token, newest first
// @Summary List unredeemed invitation tokens
// @Tags Token
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} utilities.Response[[]model.Token]
// @Failure 500 {object} utilities.ErrorResponse "Failed to fetch tokens"
// @Router /admin/tokens [get]
func (tc *TokenController) ListTokens(c *gin.Context) {
	tokens := []model.Token{}
	if err := tc.DB.Order("created_at DESC").Find(&tokens).Error; err != nil {
		slog.Error("Failed to fetch tokens", "error", err)
		utilities.Fail(c, http.StatusInternalServerError, "Failed to fetch tokens")
		return
	}
	utilities.OK(c, http.StatusOK, "Tokens fetched successfully", tokens)
}

// RedeemToken consumes a token. Lookup and delete happen in one statement,
// so a token can be redeemed at most once even under concurrent requests.
// @Summary Redeem an invitation token
// @Tags Token
// @Accept json
// @Produce json
// @Param Token body redeemInfo true "Invitation token"
// @Success 200 {object} utilities.Response[model.Token] "Token redeemed"
// @Failure 400 {object} utilities.ErrorResponse "Token is required"
// @Failure 404 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Failed to redeem token"
// @Router /token/redeem [post]
func (tc *TokenController) RedeemToken(c *gin.Context) {
	var info redeemInfo
	if err := c.ShouldBindJSON(&info); err != nil || strings.TrimSpace(info.Token) == "" {
		utilities.Fail(c, http.StatusBadRequest, "Token is required")
		return
	}

	var deleted []model.Token
	result := tc.DB.Clauses(clause.Returning{}).
		Where("token = ?", strings.TrimSpace(info.Token)).
		Delete(&deleted)
	if result.Error != nil {
		slog.Error("Failed to redeem token", "error", result.Error)
		utilities.Fail(c, http.StatusInternalServerError, "Failed to redeem token")
		return
	}
	if result.RowsAffected == 0 || len(deleted) == 0 {
		utilities.Fail(c, http.StatusNotFound, "Invalid token")
		return
	}

	utilities.OK(c, http.StatusOK, "Token redeemed successfully", deleted[0])
}
