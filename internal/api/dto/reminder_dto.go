package dto

import (
	"time"

	"github.com/clinic-kit/clinic-service/internal/domain"
)

// CreateReminderRequest payload for new reminders.
type CreateReminderRequest struct {
	PatientName string `json:"patientName"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// ReminderResponse is the doctor-facing reminder view.
type ReminderResponse struct {
	ID          string    `json:"_id"`
	PatientName string    `json:"patientName"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	IsDone      bool      `json:"isDone"`
}

// NewReminderResponse maps a domain reminder.
func NewReminderResponse(r *domain.Reminder) ReminderResponse {
	return ReminderResponse{
		ID:          r.ID,
		PatientName: r.PatientName,
		Description: r.Description,
		Date:        r.Date,
		IsDone:      r.IsDone,
	}
}
