// internal/services/notification_service.go
package services

import (
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront/internal/config"
	"github.com/javajoker/storefront/internal/i18n"
	"github.com/javajoker/storefront/internal/notify"
)

// NotificationService builds per-session notification queues and posts
// localized messages to them.
type NotificationService struct {
	config config.NotificationConfig
	clock  notify.Clock
	logger *logrus.Entry
}

func NewNotificationService(cfg config.NotificationConfig, clock notify.Clock) *NotificationService {
	if clock == nil {
		clock = notify.RealClock()
	}
	return &NotificationService{
		config: cfg,
		clock:  clock,
		logger: logrus.WithField("component", "notifications"),
	}
}

func (s *NotificationService) NewQueue(sessionID string) *notify.Queue {
	return notify.NewQueue(
		notify.WithClock(s.clock),
		notify.WithLogger(s.logger.WithField("session_id", sessionID)),
		notify.WithDefaultDuration(notify.SeveritySuccess, s.config.SuccessDuration),
		notify.WithDefaultDuration(notify.SeverityError, s.config.ErrorDuration),
		notify.WithDefaultDuration(notify.SeverityWarning, s.config.WarningDuration),
		notify.WithDefaultDuration(notify.SeverityInfo, s.config.InfoDuration),
	)
}

// Notify posts a translated message. The title is i18n.T(lang, key, args...)
// and the description is left empty.
func (s *NotificationService) Notify(q *notify.Queue, lang string, severity notify.Severity, key string, args ...interface{}) string {
	return q.Add(notify.Input{
		Title:    i18n.T(lang, key, args...),
		Severity: severity,
	})
}

// NotifyWithAction posts a translated message carrying an action button.
func (s *NotificationService) NotifyWithAction(q *notify.Queue, lang string, severity notify.Severity, action *notify.Action, key string, args ...interface{}) string {
	return q.Add(notify.Input{
		Title:    i18n.T(lang, key, args...),
		Severity: severity,
		Action:   action,
	})
}
