package middleware

import "github.com/gin-gonic/gin"

const userIDContextKey = "userID"

// defaultCallerID is recorded in audit fields when no caller identifies itself.
const defaultCallerID = "system"

// CallerIdentityMiddleware stores the caller identity from the X-User-ID
// header on the Gin context for audit fields downstream.
func CallerIdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			userID = defaultCallerID
		}
		c.Set(userIDContextKey, userID)
		c.Next()
	}
}

// GetUserIDFromContext retrieves the caller identity set by
// CallerIdentityMiddleware.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID := c.GetString(userIDContextKey)
	if userID == "" {
		return "", false
	}
	return userID, true
}
