package middleware

import (
	"net/http"
	"strings"

	"cleanitalia/utils"

	"github.com/gin-gonic/gin"
)

const (
	// CtxAdminTokenHash is where the middleware stores the session key for
	// downstream handlers (logout needs it).
	CtxAdminTokenHash = "adminTokenHash"
	CtxAdminUser      = "adminUser"
)

func authorize(c *gin.Context, store utils.SessionStore, tokenString string) bool {
	sub, err := utils.ExtractSubjectFromToken(tokenString)
	if err != nil {
		return false
	}
	hash := utils.HashToken(tokenString)
	if _, err := store.Get(c.Request.Context(), hash); err != nil {
		return false
	}
	c.Set(CtxAdminTokenHash, hash)
	c.Set(CtxAdminUser, sub)
	return true
}

// AdminAuthMiddleware guards admin endpoints with a bearer token that must
// map to a live session.
func AdminAuthMiddleware(store utils.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if !authorize(c, store, tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}
		c.Next()
	}
}

// AdminQueryTokenMiddleware authenticates via a ?token= query parameter.
// Used only by the event stream: EventSource cannot set custom headers.
func AdminQueryTokenMiddleware(store utils.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.Query("token")
		if tokenString == "" || !authorize(c, store, tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}
		c.Next()
	}
}
