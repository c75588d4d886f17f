package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tikaboopeak/weather-monitor/internal/common"
	"github.com/tikaboopeak/weather-monitor/internal/server/sessions"
)

const sessionContextKey = "session"

// requireRole gates a handler behind the session registry. The token is
// read verbatim from the Authorization header (no scheme prefix). A missing
// or unknown token yields 401, a role mismatch 403.
func (s *Server) requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")

		session, err := s.sessions.Authorize(c.Request.Context(), token, role)
		if err != nil {
			if errors.Is(err, common.ErrorForbidden) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// sessionFromContext returns the session stored by requireRole, if any.
func sessionFromContext(c *gin.Context) (*sessions.Session, bool) {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil, false
	}
	session, ok := v.(*sessions.Session)
	return session, ok
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
