package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tulamia/orderdesk/internal/usecase"
)

const (
	// CapabilityContextKey is a gin context key for the verified admin capability.
	CapabilityContextKey = "capability"
	authCookieName       = "orderdesk_token"
)

// CapabilityVerifier resolves a token to the capability it grants.
type CapabilityVerifier interface {
	Verify(token string) usecase.Capability
}

// AdminRequired ensures the caller holds the admin capability before the
// handler runs. Without it the request never reaches the backing store.
func AdminRequired(verifier CapabilityVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		capability := verifier.Verify(token)
		if !capability.Admin {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(CapabilityContextKey, capability)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}
