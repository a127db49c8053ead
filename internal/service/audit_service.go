package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/clinic-kit/clinic-service/internal/events"
)

// AuditService writes a structured log line for every domain event, giving
// admins a trace of roster, appointment and intake activity. Delivery of
// anything beyond logs is out of scope.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to all clinic events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventAppointmentBooked,
		events.EventAppointmentStatusChanged,
		events.EventAppointmentRescheduled,
		events.EventDoctorAdded,
		events.EventDoctorRemoved,
		events.EventReminderCreated,
		events.EventReminderCompleted,
		events.EventCallbackReceived,
		events.EventFeedbackSubmitted,
	} {
		a.dispatcher.Subscribe(eventType, a.handleEvent)
	}
}

func (a *AuditService) handleEvent(_ context.Context, event events.Event) error {
	a.logger.Info("audit",
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)),
		zap.String("entity_id", event.EntityID),
		zap.String("actor_id", event.Actor.UserID),
		zap.String("actor_role", string(event.Actor.Role)),
		zap.Any("payload", event.Payload),
	)
	return nil
}
