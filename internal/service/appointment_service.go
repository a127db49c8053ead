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

// AppointmentService coordinates booking and appointment workflows.
type AppointmentService struct {
	appointments  repository.AppointmentRepository
	prescriptions repository.PrescriptionRepository
	users         repository.UserRepository
	dispatcher    events.Dispatcher
}

// AppointmentDependencies bundles repositories for the appointment service.
type AppointmentDependencies struct {
	AppointmentRepo  repository.AppointmentRepository
	PrescriptionRepo repository.PrescriptionRepository
	UserRepo         repository.UserRepository
	Dispatcher       events.Dispatcher
}

// NewAppointmentService constructs the service.
func NewAppointmentService(deps AppointmentDependencies) *AppointmentService {
	return &AppointmentService{
		appointments:  deps.AppointmentRepo,
		prescriptions: deps.PrescriptionRepo,
		users:         deps.UserRepo,
		dispatcher:    deps.Dispatcher,
	}
}

// PatientDashboard aggregates a patient's appointments and prescriptions.
type PatientDashboard struct {
	Appointments  []domain.AppointmentSummary
	Prescriptions []domain.PrescriptionSummary
}

// Book creates a Pending appointment for the patient. The doctor must exist
// and hold the doctor role; the existence check and the insert are not
// atomic, which matches the store's guarantees.
func (s *AppointmentService) Book(ctx context.Context, patient *domain.User, doctorID string, date time.Time, timeSlot string) (*domain.Appointment, *domain.User, error) {
	doctor, err := s.users.GetByIDAndRole(ctx, doctorID, domain.RoleDoctor)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewValidationError("Invalid patient or doctor")
		}
		return nil, nil, err
	}

	appt := &domain.Appointment{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      date,
		TimeSlot:  timeSlot,
		Status:    domain.AppointmentPending,
	}
	if err := s.appointments.Create(ctx, appt); err != nil {
		return nil, nil, err
	}

	s.publish(ctx, events.EventAppointmentBooked, appt.ID,
		events.Actor{Role: patient.Role, UserID: patient.ID},
		events.AppointmentBookedPayload{PatientID: patient.ID, DoctorID: doctor.ID, TimeSlot: timeSlot})

	return appt, doctor, nil
}

// Dashboard returns the patient's appointments and prescriptions with
// doctor names resolved.
func (s *AppointmentService) Dashboard(ctx context.Context, patientID string) (*PatientDashboard, error) {
	appointments, err := s.appointments.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	prescriptions, err := s.prescriptions.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return &PatientDashboard{Appointments: appointments, Prescriptions: prescriptions}, nil
}

// ListForDoctor returns the doctor's own appointments.
func (s *AppointmentService) ListForDoctor(ctx context.Context, doctorID string) ([]domain.AppointmentSummary, error) {
	return s.appointments.ListByDoctor(ctx, doctorID)
}

// ListAll returns every appointment with participant names. Admin only;
// no ownership filter applies.
func (s *AppointmentService) ListAll(ctx context.Context) ([]domain.AppointmentSummary, error) {
	return s.appointments.ListAll(ctx)
}

// UpdateStatus sets an appointment's status on behalf of the actor. Doctors
// only reach their own rows; admins reach any row. The transition table is
// flat: any enum value may replace any other.
func (s *AppointmentService) UpdateStatus(ctx context.Context, actor *domain.User, apptID string, status domain.AppointmentStatus) (*domain.Appointment, error) {
	var err error
	if actor.Role == domain.RoleAdmin {
		err = s.appointments.UpdateStatus(ctx, apptID, status)
	} else {
		err = s.appointments.UpdateStatusForDoctor(ctx, apptID, actor.ID, status)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Appointment not found")
		}
		return nil, err
	}

	appt, err := s.appointments.GetByID(ctx, apptID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventAppointmentStatusChanged, appt.ID,
		events.Actor{Role: actor.Role, UserID: actor.ID},
		events.AppointmentStatusChangedPayload{NewStatus: status})

	return appt, nil
}

// ScheduleNext books a follow-up appointment with the same participants as
// an existing one owned by the doctor.
func (s *AppointmentService) ScheduleNext(ctx context.Context, doctor *domain.User, apptID string, date time.Time, timeSlot string) (*domain.Appointment, error) {
	current, err := s.appointments.GetByIDForDoctor(ctx, apptID, doctor.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Appointment not found")
		}
		return nil, err
	}

	next := &domain.Appointment{
		PatientID: current.PatientID,
		DoctorID:  current.DoctorID,
		Date:      date,
		TimeSlot:  timeSlot,
		Status:    domain.AppointmentPending,
	}
	if err := s.appointments.Create(ctx, next); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventAppointmentRescheduled, next.ID,
		events.Actor{Role: doctor.Role, UserID: doctor.ID},
		events.AppointmentBookedPayload{PatientID: next.PatientID, DoctorID: next.DoctorID, TimeSlot: timeSlot})

	return next, nil
}

// ListPatientsForDoctor returns the distinct patients that have appointments
// with the doctor.
func (s *AppointmentService) ListPatientsForDoctor(ctx context.Context, doctorID string) ([]domain.PatientContact, error) {
	return s.appointments.ListPatientsByDoctor(ctx, doctorID)
}

func (s *AppointmentService) publish(ctx context.Context, eventType events.EventType, entityID string, actor events.Actor, payload interface{}) {
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
