package middleware

import (
	"net/http"
	"strings"

	"rental_booking/internal/model"
	"rental_booking/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	AuthUserKey  = "authUser"
	AuthEmailKey = "authEmail"
)

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, model.Envelope{
		StatusCode: http.StatusUnauthorized,
		Message:    msg,
		Error:      "Unauthorized",
	})
}

// JWTAuthMiddleware creates a middleware for JWT authentication
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "Authorization header required")
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			unauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := jwtUtil.ValidateToken(parts[1])
		if err != nil {
			unauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(AuthUserKey, claims.UserID)
		c.Set(AuthEmailKey, claims.Email)

		c.Next()
	}
}

// AuthUserID returns the id set by JWTAuthMiddleware
func AuthUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(AuthUserKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok && id > 0
}
