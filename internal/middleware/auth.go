package middleware

import (
	"net/http"
	"strings"

	"github.com/franciscosanchezn/gin-shop-api/internal/auth"
	"github.com/franciscosanchezn/gin-shop-api/internal/models"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Gin context keys set by JWTAuth
const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
)

// TokenParser verifies a bearer token and returns its claims
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// JWTAuth rejects requests without a valid bearer token and stores the
// caller's id, email and role in the gin context
func JWTAuth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, models.ErrUnauthorized,
				"Missing Authorization header. A valid Bearer token is required.")
			return
		}

		scheme, tokenString, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			abortWithError(c, http.StatusUnauthorized, models.ErrUnauthorized,
				"Authorization header must use Bearer scheme. Format: 'Bearer <token>'")
			return
		}

		tokenString = strings.TrimSpace(tokenString)
		if tokenString == "" {
			abortWithError(c, http.StatusUnauthorized, models.ErrInvalidToken, "Bearer token is empty")
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			log.WithError(err).WithField("path", c.FullPath()).Debug("Rejected bearer token")
			abortWithError(c, http.StatusUnauthorized, models.ErrInvalidToken, "Invalid or expired token")
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			log.WithError(err).WithField("path", c.FullPath()).Debug("Rejected token without a user id")
			abortWithError(c, http.StatusUnauthorized, models.ErrInvalidToken, "Invalid or expired token")
			return
		}
		c.Set(ContextUserID, userID)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserRole, claims.Role)

		c.Next()
	}
}

// abortWithError stops the chain and writes a standard API error body
func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, models.NewAPIError(code, message))
}
