package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinic-kit/clinic-service/internal/api/dto"
	"github.com/clinic-kit/clinic-service/internal/auth"
	"github.com/clinic-kit/clinic-service/internal/service"
	apperrors "github.com/clinic-kit/clinic-service/pkg/util"
)

// PatientHandler exposes the patient dashboard endpoints. The authenticated
// identity supplies the patient id; clients cannot act for other patients.
type PatientHandler struct {
	appointments *service.AppointmentService
	intake       *service.IntakeService
}

// NewPatientHandler constructs handler.
func NewPatientHandler(appointments *service.AppointmentService, intake *service.IntakeService) *PatientHandler {
	return &PatientHandler{appointments: appointments, intake: intake}
}

// BookAppointment handles POST /api/patient/appointments.
func (h *PatientHandler) BookAppointment(c *fiber.Ctx) error {
	patient, _ := auth.IdentityFromContext(c)

	var req dto.BookAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.DoctorID == "" || req.Date == "" || req.TimeSlot == "" {
		return apperrors.NewValidationError("All fields are required")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return apperrors.NewValidationError("All fields are required")
	}

	appt, doctor, err := h.appointments.Book(c.Context(), patient, req.DoctorID, date, req.TimeSlot)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Appointment booked successfully",
		"appointment": fiber.Map{
			"_id":         appt.ID,
			"date":        appt.Date,
			"timeSlot":    appt.TimeSlot,
			"status":      appt.Status,
			"doctorName":  doctor.Name,
			"patientName": patient.Name,
		},
	})
}

// Dashboard handles GET /api/patient/dashboard.
func (h *PatientHandler) Dashboard(c *fiber.Ctx) error {
	patient, _ := auth.IdentityFromContext(c)

	dashboard, err := h.appointments.Dashboard(c.Context(), patient.ID)
	if err != nil {
		return err
	}

	appointments := make([]dto.AppointmentResponse, 0, len(dashboard.Appointments))
	for _, a := range dashboard.Appointments {
		resp := dto.NewAppointmentResponse(a)
		resp.PatientName = ""
		appointments = append(appointments, resp)
	}

	prescriptions := make([]dto.PrescriptionResponse, 0, len(dashboard.Prescriptions))
	for _, p := range dashboard.Prescriptions {
		prescriptions = append(prescriptions, dto.PrescriptionResponse{
			ID:         p.ID,
			Date:       p.Date,
			Details:    p.Details,
			DoctorName: p.DoctorName,
		})
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"appointments":  appointments,
		"prescriptions": prescriptions,
	})
}

// SubmitFeedback handles POST /api/patient/feedback.
func (h *PatientHandler) SubmitFeedback(c *fiber.Ctx) error {
	patient, _ := auth.IdentityFromContext(c)

	var req dto.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	if _, err := h.intake.SubmitFeedback(c.Context(), patient, req.Name, req.Message, req.Rating); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Feedback submitted successfully",
	})
}
