package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"JobPortal-backend/internal/utilities"
)

// CheckRole will protect endpoint from user that is not a specific roles
func CheckRole(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := utilities.MustExtractUser(ctx)
		if !ok {
			return
		}

		if !slices.Contains(roles, user.Role) {
			utilities.Fail(ctx, http.StatusForbidden, "User doesn't have permission to access")
			return
		}
		ctx.Next()
	}
}
