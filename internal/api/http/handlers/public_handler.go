package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/clinic-kit/clinic-service/internal/api/dto"
	"github.com/clinic-kit/clinic-service/internal/service"
	apperrors "github.com/clinic-kit/clinic-service/pkg/util"
)

// PublicHandler exposes the open endpoints used by the clinic website. No
// guard runs in front of these; only input-shape validation applies.
type PublicHandler struct {
	roster *service.RosterService
	intake *service.IntakeService
}

// NewPublicHandler constructs handler.
func NewPublicHandler(roster *service.RosterService, intake *service.IntakeService) *PublicHandler {
	return &PublicHandler{roster: roster, intake: intake}
}

// ListDoctors handles GET /api/admin/public/doctors, the roster the booking
// page shows to patients.
func (h *PublicHandler) ListDoctors(c *fiber.Ctx) error {
	doctors, err := h.roster.ListDoctors(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"doctors": dto.NewUserResponses(doctors),
	})
}

// CreateCallback handles POST /api/public/callback.
func (h *PublicHandler) CreateCallback(c *fiber.Ctx) error {
	var req dto.CallbackIntakeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Phone number is required")
	}

	cb, err := h.intake.CreateCallback(c.Context(), req.Name, req.Phone, req.Message)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"message":  "Callback saved",
		"callback": dto.NewCallbackResponse(cb),
	})
}

// ListFeedback handles GET /api/feedback/all.
func (h *PublicHandler) ListFeedback(c *fiber.Ctx) error {
	feedbacks, err := h.intake.ListFeedback(c.Context())
	if err != nil {
		return err
	}

	resp := make([]dto.FeedbackResponse, 0, len(feedbacks))
	for i := range feedbacks {
		resp = append(resp, dto.NewFeedbackResponse(&feedbacks[i]))
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"feedbacks": resp,
	})
}
