package ginserver

import (
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"
)

const userIDKey = "user_id"

// IdentityHeader carries the authenticated user id. Session issuance lives
// in a separate gateway; this service trusts the header it forwards.
const IdentityHeader = "X-User-ID"

// Identity populates the current user from the trusted identity header.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := strings.TrimSpace(c.GetHeader(IdentityHeader)); id != "" {
			c.Set(userIDKey, id)
		}
		c.Next()
	}
}

// requireUser aborts with 401 when no identity was forwarded.
func requireUser(c *gin.Context) (string, bool) {
	id := c.GetString(userIDKey)
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return "", false
	}
	return id, true
}
