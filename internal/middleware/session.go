// internal/middleware/session.go
package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront/internal/i18n"
	"github.com/javajoker/storefront/internal/notify"
	"github.com/javajoker/storefront/internal/services"
	"github.com/javajoker/storefront/internal/utils"
)

const (
	SessionHeader     = "X-Session-Token"
	sessionContextKey = "session"
)

// SessionRequired resolves the session token and installs the session and
// its notification queue in the request context.
func SessionRequired(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		token := c.GetHeader(SessionHeader)
		if token == "" {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeySessionRequired))
			c.Abort()
			return
		}

		sess, err := sessions.Resolve(token)
		if err != nil {
			key := i18n.KeySessionInvalid
			if utils.IsTokenExpired(err) || errors.Is(err, services.ErrSessionNotFound) {
				key = i18n.KeySessionExpired
			}
			utils.UnauthorizedResponse(c, i18n.T(lang, key))
			c.Abort()
			return
		}

		setSession(c, sess)
		c.Next()
	}
}

// OptionalSession installs the session when a valid token is present and
// otherwise lets the request through untouched.
func OptionalSession(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(SessionHeader)
		if token == "" {
			c.Next()
			return
		}

		sess, err := sessions.Resolve(token)
		if err != nil {
			c.Next()
			return
		}

		setSession(c, sess)
		c.Next()
	}
}

func setSession(c *gin.Context, sess *services.Session) {
	c.Set(sessionContextKey, sess)
	c.Set("session_id", sess.ID)
	c.Request = c.Request.WithContext(notify.NewContext(c.Request.Context(), sess.Notifications))
}

func GetSession(c *gin.Context) (*services.Session, bool) {
	if value, exists := c.Get(sessionContextKey); exists {
		if sess, ok := value.(*services.Session); ok {
			return sess, true
		}
	}
	return nil, false
}

// MustSession panics when SessionRequired did not run for this route.
func MustSession(c *gin.Context) *services.Session {
	sess, ok := GetSession(c)
	if !ok {
		panic("middleware: session route registered without SessionRequired")
	}
	return sess
}
