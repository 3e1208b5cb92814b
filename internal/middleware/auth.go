package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/opsboard/internal/constants"
	apierrors "github.com/yukikurage/opsboard/internal/errors"
)

// RequireAuth checks if the owner is authenticated via session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		username, ok := session.Get(constants.ContextKeyUsername).(string)

		if !ok || username == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store username in context for easy access in handlers
		c.Set(constants.ContextKeyUsername, username)
		c.Next()
	}
}

// GetUsername retrieves the current owner name from context
func GetUsername(c *gin.Context) (string, bool) {
	value, exists := c.Get(constants.ContextKeyUsername)
	if !exists {
		return "", false
	}
	username, ok := value.(string)
	return username, ok && username != ""
}
