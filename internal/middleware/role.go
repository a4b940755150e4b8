package middleware

import (
	"context"
	"log"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"mentora/backend/internal/models"
	"mentora/backend/internal/store"
)

// RoleLookup is the part of the user store the role gate needs.
type RoleLookup interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// RequireRole lets the request through only when the caller's stored role is
// one of roles. It must run after AuthMiddleware.
func RequireRole(users RoleLookup, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := EmailForContext(c.Request.Context())
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized access",
				"message": "Missing or invalid token",
			})
			return
		}

		user, err := users.FindByEmail(c.Request.Context(), email)
		if errors.Is(err, store.ErrNotFound) || (err == nil && !slices.Contains(roles, user.Role)) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "Unauthorized access",
				"message": "Invalid role",
			})
			return
		}
		if err != nil {
			log.Printf("Error verifying role for %s: %v", email, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":   err.Error(),
				"message": "Role verification failed",
			})
			return
		}
		c.Next()
	}
}
