package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"JobPortal-backend/internal/auth"
	"JobPortal-backend/internal/utilities"
)

// JwtBlacklistCheck is a middleware that rejects signed-out tokens
func JwtBlacklistCheck(bl auth.JwtBlacklistStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := utilities.ExtractBearerToken(ctx)
		if err != nil {
			utilities.Fail(ctx, http.StatusUnauthorized, err.Error())
			return
		}

		isBlacklisted, err := bl.IsBlacklisted(tokenString)
		if err != nil {
			slog.Error("Failed to check token blacklist", "error", err)
			utilities.Fail(ctx, http.StatusInternalServerError, "Failed to validate token")
			return
		}

		if isBlacklisted {
			utilities.Fail(ctx, http.StatusUnauthorized, "Token has been revoked")
			return
		}

		ctx.Next()
	}
}
