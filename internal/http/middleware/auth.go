// README: Firebase ID-token auth middleware.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fuelflow/internal/infra"
)

const callerUIDKey = "caller_uid"
const callerClaimsKey = "caller_claims"

// Auth verifies the Bearer token on every request and stores the
// caller's UID in the request context.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		token, err := verifier.VerifyIDToken(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(callerUIDKey, token.UID)
		c.Set(callerClaimsKey, token.Claims)
		c.Next()
	}
}

// CallerUID returns the authenticated caller's UID, empty when the
// request did not pass Auth.
func CallerUID(c *gin.Context) string {
	return c.GetString(callerUIDKey)
}

// CallerEmail pulls the email claim when present.
func CallerEmail(c *gin.Context) string {
	claims, ok := c.Get(callerClaimsKey)
	if !ok {
		return ""
	}
	m, ok := claims.(map[string]interface{})
	if !ok {
		return ""
	}
	email, _ := m["email"].(string)
	return email
}
