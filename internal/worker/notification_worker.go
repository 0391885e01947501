package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/service"
)

// StartNotificationWorker registers notification handlers and, when a
// publisher is given, forwards every ticket event to Kafka.
func StartNotificationWorker(dispatcher events.Dispatcher, notificationService *service.NotificationService, publisher events.EventHandler, logger *zap.Logger) {
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
	if dispatcher == nil || publisher == nil {
		return
	}
	for _, eventType := range events.AllTicketEvents {
		dispatcher.Subscribe(eventType, publisher)
	}
	logger.Info("forwarding ticket events to kafka")
}
