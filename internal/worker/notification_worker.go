package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/users-service/internal/service"
)

// StartNotificationWorker subscribes the notification service to account
// events so that passenger sign-ups reach the message bus.
func StartNotificationWorker(notificationService *service.NotificationService, logger *zap.Logger) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
	if logger != nil {
		logger.Info("notification worker subscribed")
	}
}
