package middlewares

import (
	"net/http"

	"platelog/services"

	"github.com/gin-gonic/gin"
)

// SessionMiddleware binds the caller's in-memory session (day log, chat
// transcript, submission status) to the request. Sessions are keyed by an
// opaque header and created on first use; there are no accounts and no
// identity beyond the ID the caller picked.
func SessionMiddleware(store *services.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetHeader("X-Session-ID")
		if sid == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "X-Session-ID header required"})
			return
		}

		c.Set("sessionID", sid)
		c.Set("session", store.Get(sid))

		c.Next()
	}
}
