package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	headerUserID = "X-User-Id"
	// CtxUserID is the gin context key the handlers read the caller id from.
	CtxUserID = "user_id"
)

// Identity resolves the caller from the X-User-Id header set by the auth
// proxy. devUserID is a local fallback for development; when it is empty an
// unidentified request is rejected with 401.
func Identity(devUserID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(headerUserID)
		if userID == "" {
			userID = devUserID
		}
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(CtxUserID, userID)
		c.Next()
	}
}

// UserID reads the resolved caller id from the gin context.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}
