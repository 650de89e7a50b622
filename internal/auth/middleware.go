package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware protects the recompute and submission-replay routes. It
// accepts either the server-side static secret or a valid admin JWT from the
// login flow. A mismatch is an authorization failure, not a data error.
func AdminMiddleware(secret string, tokens TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(strings.ToLower(h), "bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			c.Abort()
			return
		}

		raw := strings.TrimSpace(h[len("Bearer "):])

		if secret != "" && subtle.ConstantTimeCompare([]byte(raw), []byte(secret)) == 1 {
			c.Next()
			return
		}

		if _, err := tokens.Parse(raw); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		c.Next()
	}
}
