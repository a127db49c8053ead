package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/clinic-kit/clinic-service/internal/api/dto"
	"github.com/clinic-kit/clinic-service/internal/domain"
	"github.com/clinic-kit/clinic-service/internal/service"
	apperrors "github.com/clinic-kit/clinic-service/pkg/util"
)

// AuthHandler exposes the public account endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, phone and password are required")
	}

	// Doctor self-registration is rejected inside the service; any other
	// unknown role is a plain validation error.
	role := domain.Role(req.Role)
	if req.Role == "" {
		role = domain.RolePatient
	} else if !role.Valid() && role != domain.RoleDoctor {
		return apperrors.NewValidationError("invalid role")
	}

	if _, err := h.auth.Register(c.Context(), req.Name, req.Email, req.Phone, req.Password, role); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("%s registered successfully!", role),
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password are required")
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return apperrors.NewNotFound("Invalid Email or Role")
	}

	user, token, _, err := h.auth.Login(c.Context(), req.Email, req.Password, role)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login Successful",
		"token":   token,
		"role":    user.Role,
		"name":    user.Name,
	})
}

// ForgotPassword handles POST /api/auth/forgot-password.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email is required")
	}

	if err := h.auth.RequestPasswordReset(c.Context(), req.Email); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "OTP sent to your email",
	})
}

// ResetPassword handles POST /api/auth/reset-password.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Email == "" || req.OTP == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("email, otp and newPassword are required")
	}

	if err := h.auth.ConfirmPasswordReset(c.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Password reset successfully!",
	})
}
