package worker

import (
	"github.com/counterdesk/counter-dispatch/internal/service"
)

// StartNotificationWorker registers the sink fan-out and the audit recorder.
func StartNotificationWorker(notificationService *service.NotificationService, auditService *service.AuditService) {
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
	if auditService != nil {
		auditService.RegisterHandlers()
	}
}
