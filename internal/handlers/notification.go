// internal/handlers/notification.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront/internal/i18n"
	"github.com/javajoker/storefront/internal/middleware"
	"github.com/javajoker/storefront/internal/notify"
	"github.com/javajoker/storefront/internal/utils"
)

type NotificationHandler struct{}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{}
}

// GET /notifications
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	q := notify.MustFromContext(c.Request.Context())
	utils.SuccessResponse(c, gin.H{
		"notifications": q.List(),
	})
}

// DELETE /notifications/:id
func (h *NotificationHandler) DismissNotification(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	q := notify.MustFromContext(c.Request.Context())

	if !q.Remove(c.Param("id")) {
		utils.NotFoundResponse(c, "notification")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":       i18n.T(lang, i18n.KeyNotificationDismissed),
		"notifications": q.List(),
	})
}

// POST /notifications/:id/action
func (h *NotificationHandler) TriggerAction(c *gin.Context) {
	q := notify.MustFromContext(c.Request.Context())

	if err := q.Trigger(c.Param("id")); err != nil {
		if errors.Is(err, notify.ErrNoAction) {
			utils.ConflictResponse(c, err.Error())
			return
		}
		utils.NotFoundResponse(c, "notification")
		return
	}

	sess := middleware.MustSession(c)
	utils.SuccessResponse(c, gin.H{
		"cart":          sess.Cart().Summary(),
		"notifications": q.List(),
	})
}

// DELETE /notifications
func (h *NotificationHandler) ClearNotifications(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	q := notify.MustFromContext(c.Request.Context())

	q.Clear()
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyNotificationsCleared),
	})
}
