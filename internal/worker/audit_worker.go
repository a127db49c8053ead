package worker

import (
	"github.com/clinic-kit/clinic-service/internal/service"
)

// StartAuditWorker registers audit handlers on the dispatcher.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
