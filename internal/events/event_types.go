package events

import (
	"time"

	"github.com/clinic-kit/clinic-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAppointmentBooked        EventType = "appointment_booked"
	EventAppointmentStatusChanged EventType = "appointment_status_changed"
	EventAppointmentRescheduled   EventType = "appointment_rescheduled"
	EventDoctorAdded              EventType = "doctor_added"
	EventDoctorRemoved            EventType = "doctor_removed"
	EventReminderCreated          EventType = "reminder_created"
	EventReminderCompleted        EventType = "reminder_completed"
	EventCallbackReceived         EventType = "callback_received"
	EventFeedbackSubmitted        EventType = "feedback_submitted"
)

// Actor encapsulates actor metadata for an event. Public-intake events
// carry no actor.
type Actor struct {
	Role   domain.Role `json:"role,omitempty"`
	UserID string      `json:"user_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  string      `json:"entity_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AppointmentBookedPayload payload.
type AppointmentBookedPayload struct {
	PatientID string `json:"patient_id"`
	DoctorID  string `json:"doctor_id"`
	TimeSlot  string `json:"time_slot"`
}

// AppointmentStatusChangedPayload payload.
type AppointmentStatusChangedPayload struct {
	NewStatus domain.AppointmentStatus `json:"new_status"`
}

// DoctorRosterPayload payload for roster changes.
type DoctorRosterPayload struct {
	Email      string `json:"email,omitempty"`
	Speciality string `json:"speciality,omitempty"`
}

// CallbackReceivedPayload payload.
type CallbackReceivedPayload struct {
	Phone string `json:"phone"`
}
