package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"slices"

	"rental_booking/internal/model"

	"github.com/gin-gonic/gin"
)

// RoleLookup loads the caller's current roles
type RoleLookup interface {
	RolesOf(ctx context.Context, userID int64) ([]model.Role, error)
}

// RoleMiddleware lets the request through when the caller holds any of allowedRoles.
// Roles are read from the database on every request so a toggle takes effect immediately.
func RoleMiddleware(lookup RoleLookup, allowedRoles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := AuthUserID(c)
		if !ok {
			unauthorized(c, "User not authenticated")
			return
		}

		roles, err := lookup.RolesOf(c.Request.Context(), userID)
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "role lookup failed", "user_id", userID, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, model.Envelope{
				StatusCode: http.StatusInternalServerError,
				Message:    "Failed to check user role",
				Error:      "Internal Server Error",
			})
			return
		}

		for _, r := range roles {
			if slices.Contains(allowedRoles, r) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, model.Envelope{
			StatusCode: http.StatusForbidden,
			Message:    "You do not have permission to access this resource",
			Error:      "Forbidden",
		})
	}
}

// AdminMiddleware checks if the user is an admin
func AdminMiddleware(lookup RoleLookup) gin.HandlerFunc {
	return RoleMiddleware(lookup, model.RoleAdmin)
}

// HostMiddleware checks if the user is a host
func HostMiddleware(lookup RoleLookup) gin.HandlerFunc {
	return RoleMiddleware(lookup, model.RoleHost)
}
