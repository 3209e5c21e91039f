package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nikhpete/devconnect/internal/tokens"
)

// TokenHeader is the request header carrying the bearer token. Clients send
// the raw token, not an Authorization: Bearer scheme.
const TokenHeader = "x-auth-token"

// userIDKey is the gin context key the gate stores the verified user id under.
const userIDKey = "userID"

// Auth returns a Gin middleware that verifies the x-auth-token header and
// attaches the resolved user id to the request context. It never touches
// the store; whether the account still exists is the consuming handler's
// problem.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(TokenHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "no token, authorization denied"})
			return
		}
		uid, err := tokens.Verify(raw, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "token is not valid"})
			return
		}
		c.Set(userIDKey, uid)
		c.Next()
	}
}

// UserID returns the verified user id set by Auth, or "" when the request
// did not pass through the gate.
func UserID(c *gin.Context) string {
	v, ok := c.Get(userIDKey)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
