package middleware

import (
	"context"                        // Context for store lookups
	"errors"                         // Error matching
	"net/http"                       // HTTP status codes
	"recipe_manager/internal/domain" // Domain models
	"recipe_manager/internal/utils"  // JWT utility functions
	"strings"                        // String manipulation

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

//go:generate mockgen -destination=mock/user_finder.go -package=mock . UserFinder

// UserFinder resolves a token subject to a user
type UserFinder interface {
	FindUserByID(ctx context.Context, id string) (*domain.User, error)
}

// ContextUserID is the gin context key holding the authenticated user's id
const ContextUserID = "userID"

// JWTAuthMiddleware validates the bearer token, resolves its subject to an
// existing user and stores the user id in the context. Every guarded request
// costs one user lookup; nothing is cached.
func JWTAuthMiddleware(secret string, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "login required"})
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")) // Extract the token string
		claims, err := utils.ParseJWT(tokenStr, secret)                          // Verify signature and expiry
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}
		user, err := users.FindUserByID(c.Request.Context(), claims.UserID) // Resolve the subject
		if errors.Is(err, domain.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": claims.UserID, // Token subject
				"error":   err.Error(),   // Error message
			}).Error("Auth lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		c.Set(ContextUserID, user.ID) // Store userID in context
		c.Next()                      // Proceed to the next handler
	}
}

// UserID returns the authenticated user's id set by JWTAuthMiddleware
func UserID(c *gin.Context) (string, bool) {
	id := c.GetString(ContextUserID)
	return id, id != ""
}
