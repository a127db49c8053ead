package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/clinic-kit/clinic-service/internal/domain"
	"github.com/clinic-kit/clinic-service/internal/events"
	"github.com/clinic-kit/clinic-service/internal/repository"
	apperrors "github.com/clinic-kit/clinic-service/pkg/util"
)

const feedbackPageSize = 50

// IntakeService handles the public site surface: callback requests and
// patient feedback.
type IntakeService struct {
	callbacks  repository.CallbackRepository
	feedback   repository.FeedbackRepository
	dispatcher events.Dispatcher
}

// NewIntakeService constructs the service.
func NewIntakeService(callbacks repository.CallbackRepository, feedback repository.FeedbackRepository, dispatcher events.Dispatcher) *IntakeService {
	return &IntakeService{callbacks: callbacks, feedback: feedback, dispatcher: dispatcher}
}

// CreateCallback records a call-me-back request from the landing page. Only
// the phone number is mandatory and it must survive trimming.
func (s *IntakeService) CreateCallback(ctx context.Context, name, phone, message string) (*domain.CallbackRequest, error) {
	phone = strings.TrimSpace(phone)
	if len(phone) < 6 {
		return nil, apperrors.NewValidationError("Phone number is required")
	}

	cb := &domain.CallbackRequest{
		Name:    strings.TrimSpace(name),
		Phone:   phone,
		Message: strings.TrimSpace(message),
	}
	if err := s.callbacks.Create(ctx, cb); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventCallbackReceived, cb.ID, events.Actor{},
		events.CallbackReceivedPayload{Phone: cb.Phone})

	return cb, nil
}

// ListCallbacks returns all callback requests, newest first.
func (s *IntakeService) ListCallbacks(ctx context.Context) ([]domain.CallbackRequest, error) {
	return s.callbacks.List(ctx)
}

// MarkCallbackContacted flags a callback as handled.
func (s *IntakeService) MarkCallbackContacted(ctx context.Context, id string) (*domain.CallbackRequest, error) {
	cb, err := s.callbacks.MarkContacted(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Callback not found")
		}
		return nil, err
	}
	return cb, nil
}

// DeleteCallback removes a callback request.
func (s *IntakeService) DeleteCallback(ctx context.Context, id string) error {
	if err := s.callbacks.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Callback not found")
		}
		return err
	}
	return nil
}

// SubmitFeedback stores a patient testimonial. Rating defaults to 5 when
// the client omits it.
func (s *IntakeService) SubmitFeedback(ctx context.Context, patient *domain.User, name, message string, rating int) (*domain.Feedback, error) {
	if name == "" || message == "" {
		return nil, apperrors.NewValidationError("name and message are required")
	}
	if rating <= 0 {
		rating = 5
	}

	fb := &domain.Feedback{
		PatientID: patient.ID,
		Name:      name,
		Message:   message,
		Rating:    rating,
	}
	if err := s.feedback.Create(ctx, fb); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventFeedbackSubmitted, fb.ID,
		events.Actor{Role: patient.Role, UserID: patient.ID}, nil)

	return fb, nil
}

// ListFeedback returns the most recent feedback entries for the site.
func (s *IntakeService) ListFeedback(ctx context.Context) ([]domain.Feedback, error) {
	return s.feedback.ListRecent(ctx, feedbackPageSize)
}

func (s *IntakeService) publish(ctx context.Context, eventType events.EventType, entityID string, actor events.Actor, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		EntityID:  entityID,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
