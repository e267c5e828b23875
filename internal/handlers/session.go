// internal/handlers/session.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront/internal/i18n"
	"github.com/javajoker/storefront/internal/middleware"
	"github.com/javajoker/storefront/internal/services"
	"github.com/javajoker/storefront/internal/utils"
)

type SessionHandler struct {
	sessionService *services.SessionService
}

func NewSessionHandler(sessionService *services.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// POST /session
func (h *SessionHandler) CreateSession(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	sess, token, err := h.sessionService.Create()
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	c.Header(middleware.SessionHeader, token)
	utils.CreatedResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeySessionCreated),
		"session_id": sess.ID,
		"token":      token,
		"created_at": sess.CreatedAt,
	})
}

// DELETE /session
func (h *SessionHandler) EndSession(c *gin.Context) {
	sess := middleware.MustSession(c)
	h.sessionService.Delete(sess.ID)
	utils.SuccessResponse(c, gin.H{
		"session_id": sess.ID,
	})
}
