package middleware

import (
	"net/http"

	"github.com/franciscosanchezn/gin-shop-api/internal/models"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// RequireRole is a middleware that checks if the user has the required role.
// It must run after JWTAuth. Insufficient roles are answered with 401 and code FORBIDDEN.
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get(ContextUserID)
		if !exists {
			abortWithError(c, http.StatusUnauthorized, models.ErrUnauthorized, "User not authenticated")
			return
		}

		role := c.GetString(ContextUserRole)
		if role != requiredRole {
			log.WithFields(log.Fields{
				"user_id":       userID,
				"user_role":     role,
				"required_role": requiredRole,
				"path":          c.FullPath(),
			}).Info("Insufficient permissions")
			abortWithError(c, http.StatusUnauthorized, models.ErrForbidden,
				"Insufficient permissions: "+requiredRole+" role required")
			return
		}

		c.Next()
	}
}
