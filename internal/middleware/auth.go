package middleware

import (
	"net/http"
	"strings"

	"tableorder/internal/auth"

	"github.com/gin-gonic/gin"
)

const (
	SubjectKey = "subject"
	RoleKey    = "role"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(tokenString, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format, use 'Bearer <token>'"})
			c.Abort()
			return
		}

		subject, role, err := auth.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token: " + err.Error()})
			c.Abort()
			return
		}

		// Attach caller info to request context
		c.Set(SubjectKey, subject)
		c.Set(RoleKey, role)
		c.Next()
	}
}

// bearerToken reads the Authorization header. Browsers cannot set headers
// on a websocket handshake, so a ?token= query parameter is accepted too.
func bearerToken(c *gin.Context) (string, bool) {
	if h := c.GetHeader("Authorization"); h != "" {
		return h, true
	}
	if t := c.Query("token"); t != "" {
		return "Bearer " + t, true
	}
	return "", false
}

// Subject is the session id for guests and the staff id for staff.
func Subject(c *gin.Context) string {
	return c.GetString(SubjectKey)
}
