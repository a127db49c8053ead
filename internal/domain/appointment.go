package domain

import (
	"fmt"
	"time"
)

// AppointmentStatus is the closed set of appointment states. Transitions are
// deliberately unconstrained: any caller a route admits may set any value
// regardless of the current one, matching the deployed behavior.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "Pending"
	AppointmentConfirmed AppointmentStatus = "Confirmed"
	AppointmentCompleted AppointmentStatus = "Completed"
	AppointmentCancelled AppointmentStatus = "Cancelled"
)

// ParseAppointmentStatus validates a status string against the closed enum.
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	switch AppointmentStatus(s) {
	case AppointmentPending, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled:
		return AppointmentStatus(s), nil
	default:
		return "", fmt.Errorf("invalid status %q", s)
	}
}

// Appointment links a patient to a doctor for a dated time slot.
type Appointment struct {
	ID        string
	PatientID string
	DoctorID  string
	Date      time.Time
	TimeSlot  string
	Status    AppointmentStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppointmentSummary is the joined read model used by listings that need
// participant names rather than ids.
type AppointmentSummary struct {
	ID          string
	PatientID   string
	DoctorID    string
	PatientName string
	DoctorName  string
	Date        time.Time
	TimeSlot    string
	Status      AppointmentStatus
}

// PatientContact is the deduplicated patient view a doctor sees, derived
// from that doctor's appointments.
type PatientContact struct {
	ID    string
	Name  string
	Email string
	Phone string
}
