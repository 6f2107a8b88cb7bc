package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/tnt-sales/docsync/internal/server/session"
)

// SessionHeader carries the opaque session ID between the browser and
// the API. The server always echoes the resolved ID so the client can
// pick up a replacement when its session expired.
const SessionHeader = "X-Docsync-Session"

const sessionContextKey = "docsync-session"

// Resolve attaches a live session to the request, minting one when the
// header is missing or stale.
func Resolve(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessions.GetOrCreate(c.GetHeader(SessionHeader))
		c.Header(SessionHeader, s.ID)
		c.Set(sessionContextKey, s)
		c.Next()
	}
}

// GetSession returns the session attached by Resolve.
func GetSession(c *gin.Context) *session.Session {
	s, _ := c.MustGet(sessionContextKey).(*session.Session)
	return s
}
