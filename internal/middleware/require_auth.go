// Package middleware contain utilities middleware code
package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"JobPortal-backend/internal/auth"
	"JobPortal-backend/internal/database"
	"JobPortal-backend/internal/model"
	"JobPortal-backend/internal/utilities"
)

// RequireAuth function is a middleware that validates a Bearer token in the Authorization
// header and checks that the user associated with the token exists before allowing
// access to the endpoint. It stores "claims" and "user" in the context.
func RequireAuth(db *database.DBinstanceStruct) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := utilities.ExtractBearerToken(ctx)
		if err != nil {
			utilities.Fail(ctx, http.StatusUnauthorized, err.Error())
			return
		}

		token, err := auth.ValidatedToken(tokenString)
		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				utilities.Fail(ctx, http.StatusUnauthorized, "Access token expired")
			case errors.Is(err, jwt.ErrTokenInvalidIssuer):
				utilities.Fail(ctx, http.StatusUnauthorized, "Invalid token issuer")
			default:
				utilities.Fail(ctx, http.StatusUnauthorized, fmt.Sprintf("Failed to validate token: %s", err.Error()))
			}
			return
		}

		if !token.Valid {
			utilities.Fail(ctx, http.StatusUnauthorized, "Invalid access token")
			return
		}

		claims := token.Claims.(*jwt.RegisteredClaims)
		ctx.Set("claims", claims)

		var foundUser model.User
		if err := db.Where("id = ?", claims.Subject).First(&foundUser).Error; err != nil {
			if database.IsNotFound(err) {
				utilities.Fail(ctx, http.StatusUnauthorized, "User not exist")
				return
			}
			slog.Error("Failed to retrieve user data", "error", err)
			utilities.Fail(ctx, http.StatusInternalServerError, "Failed to retrieve user data")
			return
		}

		ctx.Set("user", foundUser)
		ctx.Next()
	}
}
