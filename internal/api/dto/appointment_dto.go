package dto

import (
	"time"

	"github.com/clinic-kit/clinic-service/internal/domain"
)

// BookAppointmentRequest payload for patient booking.
type BookAppointmentRequest struct {
	DoctorID string `json:"doctorId"`
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`
}

// StatusUpdateRequest payload for status changes.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// NextAppointmentRequest payload for follow-up scheduling.
type NextAppointmentRequest struct {
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`
}

// AppointmentResponse is the joined appointment view.
type AppointmentResponse struct {
	ID          string    `json:"_id"`
	PatientName string    `json:"patientName,omitempty"`
	DoctorName  string    `json:"doctorName,omitempty"`
	Date        time.Time `json:"date"`
	TimeSlot    string    `json:"timeSlot"`
	Status      string    `json:"status"`
}

// NewAppointmentResponse maps a summary row.
func NewAppointmentResponse(s domain.AppointmentSummary) AppointmentResponse {
	return AppointmentResponse{
		ID:          s.ID,
		PatientName: s.PatientName,
		DoctorName:  s.DoctorName,
		Date:        s.Date,
		TimeSlot:    s.TimeSlot,
		Status:      string(s.Status),
	}
}

// PrescriptionResponse is the dashboard prescription view.
type PrescriptionResponse struct {
	ID         string    `json:"_id"`
	Date       time.Time `json:"date"`
	Details    string    `json:"details"`
	DoctorName string    `json:"doctorName"`
}
