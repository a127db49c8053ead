package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/clinic-kit/clinic-service/internal/domain"
	"github.com/clinic-kit/clinic-service/internal/events"
	"github.com/clinic-kit/clinic-service/internal/repository"
	apperrors "github.com/clinic-kit/clinic-service/pkg/util"
)

// ReminderService manages a doctor's private reminders. All operations are
// scoped to the calling doctor's id.
type ReminderService struct {
	reminders  repository.ReminderRepository
	dispatcher events.Dispatcher
}

// NewReminderService constructs the service.
func NewReminderService(reminders repository.ReminderRepository, dispatcher events.Dispatcher) *ReminderService {
	return &ReminderService{reminders: reminders, dispatcher: dispatcher}
}

// ListOpen returns the doctor's pending reminders ordered by date.
func (s *ReminderService) ListOpen(ctx context.Context, doctorID string) ([]domain.Reminder, error) {
	return s.reminders.ListOpenByDoctor(ctx, doctorID)
}

// Create adds a reminder for the doctor.
func (s *ReminderService) Create(ctx context.Context, doctor *domain.User, patientName, description string, date time.Time) (*domain.Reminder, error) {
	reminder := &domain.Reminder{
		DoctorID:    doctor.ID,
		PatientName: patientName,
		Description: description,
		Date:        date,
	}
	if err := s.reminders.Create(ctx, reminder); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventReminderCreated,
			EntityID:  reminder.ID,
			Actor:     events.Actor{Role: doctor.Role, UserID: doctor.ID},
			Timestamp: time.Now(),
		})
	}
	return reminder, nil
}

// MarkDone completes one of the doctor's reminders.
func (s *ReminderService) MarkDone(ctx context.Context, doctorID, reminderID string) (*domain.Reminder, error) {
	reminder, err := s.reminders.MarkDone(ctx, reminderID, doctorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Reminder not found")
		}
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventReminderCompleted,
			EntityID:  reminder.ID,
			Actor:     events.Actor{Role: domain.RoleDoctor, UserID: doctorID},
			Timestamp: time.Now(),
		})
	}
	return reminder, nil
}

// Delete removes one of the doctor's reminders.
func (s *ReminderService) Delete(ctx context.Context, doctorID, reminderID string) error {
	if err := s.reminders.Delete(ctx, reminderID, doctorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Reminder not found")
		}
		return err
	}
	return nil
}
