package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"unidash/internal/models"
	"unidash/internal/response"
)

// AuthMiddleware validates the bearer access token and stores the caller's
// id and role on the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "NO_AUTH_HEADER",
				Message: "authorization required",
			})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, role, err := ParseAccess(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: "invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Set("role", role)
		c.Next()
	}
}

// RequireAdmin rejects non-admin callers. Routes behind it are never
// offered to lecturers in the UI; reaching them anyway fails closed.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != models.RoleAdmin {
			c.JSON(http.StatusForbidden, response.ErrorResponse{
				Code:    response.CodeAuthorization,
				Message: "admin role required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
