package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tulamia/orderdesk/internal/server/http/middleware"
	"github.com/tulamia/orderdesk/internal/session"
	"github.com/tulamia/orderdesk/internal/usecase"
)

const sessionCookieName = "orderdesk_session"

type sessionSource interface {
	Session(id string) *session.Session
}

// resolveSession binds the request to its cart session, issuing a cookie
// for fresh sessions.
func resolveSession(c *gin.Context, src sessionSource) *session.Session {
	id, _ := c.Cookie(sessionCookieName)
	sess := src.Session(id)
	if sess.ID != id {
		c.SetCookie(sessionCookieName, sess.ID, 0, "/", "", false, true)
	}
	return sess
}

// CurrentCapability extracts the verified admin capability from context.
func CurrentCapability(c *gin.Context) usecase.Capability {
	val, ok := c.Get(middleware.CapabilityContextKey)
	if !ok {
		return usecase.Capability{}
	}
	capability, _ := val.(usecase.Capability)
	return capability
}

func requestLocale(c *gin.Context) string {
	if locale := c.Query("locale"); locale != "" {
		return locale
	}
	return "en"
}
