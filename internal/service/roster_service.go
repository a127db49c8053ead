package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/clinic-kit/clinic-service/internal/auth"
	"github.com/clinic-kit/clinic-service/internal/domain"
	"github.com/clinic-kit/clinic-service/internal/events"
	"github.com/clinic-kit/clinic-service/internal/repository"
	apperrors "github.com/clinic-kit/clinic-service/pkg/util"
)

// RosterService manages the doctor and patient rosters. Admin scope: no
// ownership filters apply here.
type RosterService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	bcryptCost int
	logger     *zap.Logger
}

// NewRosterService constructs the service.
func NewRosterService(users repository.UserRepository, dispatcher events.Dispatcher, bcryptCost int, logger *zap.Logger) *RosterService {
	return &RosterService{users: users, dispatcher: dispatcher, bcryptCost: bcryptCost, logger: logger}
}

// DoctorUpdate carries the editable doctor profile fields.
type DoctorUpdate struct {
	Name       string
	Email      string
	Phone      string
	Speciality string
}

// AddDoctor creates a doctor account.
func (s *RosterService) AddDoctor(ctx context.Context, admin *domain.User, name, email, phone, password, speciality string) (*domain.User, error) {
	if _, err := s.users.GetByEmailAndRole(ctx, email, domain.RoleDoctor); err == nil {
		return nil, apperrors.NewValidationError("Doctor already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	doctor := &domain.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		Role:         domain.RoleDoctor,
		Speciality:   speciality,
	}
	if err := s.users.Create(ctx, doctor); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventDoctorAdded, doctor.ID, admin,
		events.DoctorRosterPayload{Email: doctor.Email, Speciality: doctor.Speciality})

	return doctor, nil
}

// ListDoctors returns the doctor roster.
func (s *RosterService) ListDoctors(ctx context.Context) ([]domain.User, error) {
	return s.users.ListByRole(ctx, domain.RoleDoctor)
}

// ListPatients returns the patient roster.
func (s *RosterService) ListPatients(ctx context.Context) ([]domain.User, error) {
	return s.users.ListByRole(ctx, domain.RolePatient)
}

// UpdateDoctor edits a doctor's profile fields.
func (s *RosterService) UpdateDoctor(ctx context.Context, id string, update DoctorUpdate) (*domain.User, error) {
	doctor, err := s.users.GetByIDAndRole(ctx, id, domain.RoleDoctor)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Doctor not found")
		}
		return nil, err
	}

	if update.Name != "" {
		doctor.Name = update.Name
	}
	if update.Email != "" {
		doctor.Email = update.Email
	}
	if update.Phone != "" {
		doctor.Phone = update.Phone
	}
	if update.Speciality != "" {
		doctor.Speciality = update.Speciality
	}

	if err := s.users.Update(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

// RemoveDoctor deletes a doctor account.
func (s *RosterService) RemoveDoctor(ctx context.Context, admin *domain.User, id string) error {
	if err := s.users.DeleteByIDAndRole(ctx, id, domain.RoleDoctor); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Doctor not found")
		}
		return err
	}

	s.publish(ctx, events.EventDoctorRemoved, id, admin, nil)
	return nil
}

func (s *RosterService) publish(ctx context.Context, eventType events.EventType, entityID string, admin *domain.User, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	actor := events.Actor{}
	if admin != nil {
		actor = events.Actor{Role: admin.Role, UserID: admin.ID}
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
