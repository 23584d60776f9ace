package middleware

import (
	"net/http"
	"strings"

	"user-account-service/internal/util"

	"github.com/gin-gonic/gin"
)

// bearerPrefix is matched exactly: case-sensitive scheme, single space.
const bearerPrefix = "Bearer "

// ClaimsKey is the gin context key the decoded claims are stored under.
const ClaimsKey = "claims"

// TokenVerifier validates a raw token string.
type TokenVerifier interface {
	Verify(tokenStr string) (*util.Claims, error)
}

// AuthMiddleware gates protected routes. The Authorization header must
// start with the literal "Bearer " prefix; anything else is rejected
// before the token is even parsed. On success the decoded claims are
// placed in the context for downstream handlers.
func AuthMiddleware(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authorization header missing or malformed")
			c.Abort()
			return
		}

		tokenStr := authHeader[len(bearerPrefix):]
		claims, err := tokens.Verify(tokenStr)
		if err != nil {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}
