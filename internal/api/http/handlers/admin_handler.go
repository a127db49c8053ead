package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinic-kit/clinic-service/internal/api/dto"
	"github.com/clinic-kit/clinic-service/internal/auth"
	"github.com/clinic-kit/clinic-service/internal/domain"
	"github.com/clinic-kit/clinic-service/internal/service"
	apperrors "github.com/clinic-kit/clinic-service/pkg/util"
)

// AdminHandler exposes roster, appointment and callback administration.
// Every route behind it carries the admin allow-list; no ownership filters
// apply to admin reads or writes.
type AdminHandler struct {
	roster       *service.RosterService
	appointments *service.AppointmentService
	intake       *service.IntakeService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(roster *service.RosterService, appointments *service.AppointmentService, intake *service.IntakeService) *AdminHandler {
	return &AdminHandler{roster: roster, appointments: appointments, intake: intake}
}

// AddDoctor handles POST /api/admin/add-doctor.
func (h *AdminHandler) AddDoctor(c *fiber.Ctx) error {
	admin, _ := auth.IdentityFromContext(c)

	var req dto.AddDoctorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Password == "" {
		return apperrors.NewValidationError("All fields are required")
	}

	doctor, err := h.roster.AddDoctor(c.Context(), admin, req.Name, req.Email, req.Phone, req.Password, req.Speciality)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Doctor added successfully!",
		"doctor":  dto.NewUserResponse(doctor),
	})
}

// ListDoctors handles GET /api/admin/doctors.
func (h *AdminHandler) ListDoctors(c *fiber.Ctx) error {
	doctors, err := h.roster.ListDoctors(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"doctors": dto.NewUserResponses(doctors),
	})
}

// ListPatients handles GET /api/admin/patients.
func (h *AdminHandler) ListPatients(c *fiber.Ctx) error {
	patients, err := h.roster.ListPatients(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"patients": dto.NewUserResponses(patients),
	})
}

// EditDoctor handles PUT /api/admin/edit-doctor/:id.
func (h *AdminHandler) EditDoctor(c *fiber.Ctx) error {
	var req dto.EditDoctorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	doctor, err := h.roster.UpdateDoctor(c.Context(), c.Params("id"), service.DoctorUpdate{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Speciality: req.Speciality,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Doctor updated successfully",
		"doctor":  dto.NewUserResponse(doctor),
	})
}

// DeleteDoctor handles DELETE /api/admin/delete-doctor/:id.
func (h *AdminHandler) DeleteDoctor(c *fiber.Ctx) error {
	admin, _ := auth.IdentityFromContext(c)

	if err := h.roster.RemoveDoctor(c.Context(), admin, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Doctor deleted successfully",
	})
}

// ListAppointments handles GET /api/admin/appointments.
func (h *AdminHandler) ListAppointments(c *fiber.Ctx) error {
	appointments, err := h.appointments.ListAll(c.Context())
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

// UpdateAppointmentStatus handles PATCH /api/admin/appointments/:id/status.
func (h *AdminHandler) UpdateAppointmentStatus(c *fiber.Ctx) error {
	admin, _ := auth.IdentityFromContext(c)

	var req dto.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	status, err := domain.ParseAppointmentStatus(req.Status)
	if err != nil {
		return apperrors.NewValidationError("Invalid status value")
	}

	appt, err := h.appointments.UpdateStatus(c.Context(), admin, c.Params("id"), status)
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

// ListCallbacks handles GET /api/admin/callbacks.
func (h *AdminHandler) ListCallbacks(c *fiber.Ctx) error {
	callbacks, err := h.intake.ListCallbacks(c.Context())
	if err != nil {
		return err
	}

	resp := make([]dto.CallbackResponse, 0, len(callbacks))
	for i := range callbacks {
		resp = append(resp, dto.NewCallbackResponse(&callbacks[i]))
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"callbacks": resp,
	})
}

// MarkCallbackContacted handles PATCH /api/admin/callbacks/:id/contacted.
func (h *AdminHandler) MarkCallbackContacted(c *fiber.Ctx) error {
	cb, err := h.intake.MarkCallbackContacted(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"callback": dto.NewCallbackResponse(cb),
	})
}

// DeleteCallback handles DELETE /api/admin/callbacks/:id.
func (h *AdminHandler) DeleteCallback(c *fiber.Ctx) error {
	if err := h.intake.DeleteCallback(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Callback deleted",
	})
}
