package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/clinic-kit/clinic-service/internal/api/dto"
	"github.com/clinic-kit/clinic-service/internal/auth"
	"github.com/clinic-kit/clinic-service/internal/domain"
	"github.com/clinic-kit/clinic-service/internal/service"
	apperrors "github.com/clinic-kit/clinic-service/pkg/util"
)

// DoctorHandler exposes the doctor dashboard endpoints. Every query and
// mutation is scoped to the authenticated doctor's id.
type DoctorHandler struct {
	appointments *service.AppointmentService
	reminders    *service.ReminderService
}

// NewDoctorHandler constructs handler.
func NewDoctorHandler(appointments *service.AppointmentService, reminders *service.ReminderService) *DoctorHandler {
	return &DoctorHandler{appointments: appointments, reminders: reminders}
}

// ListAppointments handles GET /api/doctor/appointments.
func (h *DoctorHandler) ListAppointments(c *fiber.Ctx) error {
	doctor, _ := auth.IdentityFromContext(c)

	appointments, err := h.appointments.ListForDoctor(c.Context(), doctor.ID)
	if err != nil {
		return err
	}

	resp := make([]dto.AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		resp = append(resp, dto.NewAppointmentResponse(a))
	}
	return c.JSON(fiber.Map{
		"success":      true,
		"appointments": resp,
	})
}

// UpdateAppointmentStatus handles PATCH /api/doctor/appointments/:id/status.
func (h *DoctorHandler) UpdateAppointmentStatus(c *fiber.Ctx) error {
	doctor, _ := auth.IdentityFromContext(c)

	var req dto.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	status, err := domain.ParseAppointmentStatus(req.Status)
	if err != nil {
		return apperrors.NewValidationError("Invalid status")
	}

	appt, err := h.appointments.UpdateStatus(c.Context(), doctor, c.Params("id"), status)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Status updated",
		"appointment": fiber.Map{
			"_id":      appt.ID,
			"date":     appt.Date,
			"timeSlot": appt.TimeSlot,
			"status":   appt.Status,
		},
	})
}

// ScheduleNext handles POST /api/doctor/appointments/:id/next.
func (h *DoctorHandler) ScheduleNext(c *fiber.Ctx) error {
	doctor, _ := auth.IdentityFromContext(c)

	var req dto.NextAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Date == "" || req.TimeSlot == "" {
		return apperrors.NewValidationError("Date and timeSlot are required")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return apperrors.NewValidationError("Date and timeSlot are required")
	}

	next, err := h.appointments.ScheduleNext(c.Context(), doctor, c.Params("id"), date, req.TimeSlot)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Next appointment scheduled",
		"appointment": fiber.Map{
			"_id":      next.ID,
			"date":     next.Date,
			"timeSlot": next.TimeSlot,
			"status":   next.Status,
		},
	})
}

// ListReminders handles GET /api/doctor/reminders.
func (h *DoctorHandler) ListReminders(c *fiber.Ctx) error {
	doctor, _ := auth.IdentityFromContext(c)

	reminders, err := h.reminders.ListOpen(c.Context(), doctor.ID)
	if err != nil {
		return err
	}

	resp := make([]dto.ReminderResponse, 0, len(reminders))
	for i := range reminders {
		resp = append(resp, dto.NewReminderResponse(&reminders[i]))
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"reminders": resp,
	})
}

// CreateReminder handles POST /api/doctor/reminders.
func (h *DoctorHandler) CreateReminder(c *fiber.Ctx) error {
	doctor, _ := auth.IdentityFromContext(c)

	var req dto.CreateReminderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.PatientName == "" || req.Description == "" || req.Date == "" {
		return apperrors.NewValidationError("patientName, description and date are required")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return apperrors.NewValidationError("patientName, description and date are required")
	}

	reminder, err := h.reminders.Create(c.Context(), doctor, req.PatientName, req.Description, date)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"reminder": dto.NewReminderResponse(reminder),
	})
}

// CompleteReminder handles PATCH /api/doctor/reminders/:id.
func (h *DoctorHandler) CompleteReminder(c *fiber.Ctx) error {
	doctor, _ := auth.IdentityFromContext(c)

	reminder, err := h.reminders.MarkDone(c.Context(), doctor.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"reminder": dto.NewReminderResponse(reminder),
	})
}

// DeleteReminder handles DELETE /api/doctor/reminders/:id.
func (h *DoctorHandler) DeleteReminder(c *fiber.Ctx) error {
	doctor, _ := auth.IdentityFromContext(c)

	if err := h.reminders.Delete(c.Context(), doctor.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Reminder deleted",
	})
}

// ListPatients handles GET /api/doctor/patients.
func (h *DoctorHandler) ListPatients(c *fiber.Ctx) error {
	doctor, _ := auth.IdentityFromContext(c)

	patients, err := h.appointments.ListPatientsForDoctor(c.Context(), doctor.ID)
	if err != nil {
		return err
	}

	resp := make([]fiber.Map, 0, len(patients))
	for _, p := range patients {
		resp = append(resp, fiber.Map{
			"id":    p.ID,
			"name":  p.Name,
			"email": p.Email,
			"phone": p.Phone,
		})
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"patients": resp,
	})
}
