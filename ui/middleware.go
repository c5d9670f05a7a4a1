package ui

import (
	"net/http"

	"gostock/internal"
	"gostock/internal/session"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	if s.logger.GetLevel() >= internal.LogLevelInfo {
		s.router.Use(gin.LoggerWithWriter(s.logger.Writer()))
	}
	s.router.Use(gin.Recovery())
}

// sessionMiddleware attaches the caller's session and holds its lock for the request,
// so interactions of one session run one at a time
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(s.config.CookieName)
		sess, created := s.sessions.Get(id)
		if created {
			s.logger.Debug("[Session] started %s", sess.ID)
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     s.config.CookieName,
				Value:    sess.ID,
				Path:     "/",
				MaxAge:   s.config.CookieMaxAge,
				HttpOnly: true,
				Secure:   s.config.SecureCookie,
				SameSite: http.SameSiteLaxMode,
			})
		}

		sess.Lock()
		defer sess.Unlock()

		c.Set(sessionKey, sess)
		c.Next()
	}
}

func sessionFrom(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}
