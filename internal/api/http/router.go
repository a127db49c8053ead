package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinic-kit/clinic-service/internal/api/http/handlers"
	"github.com/clinic-kit/clinic-service/internal/auth"
	"github.com/clinic-kit/clinic-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
	Admin   *handlers.AdminHandler
	Doctor  *handlers.DoctorHandler
	Patient *handlers.PatientHandler
	Public  *handlers.PublicHandler
	Guard   *auth.Guard
}

// RegisterRoutes wires HTTP routes. Role allow-lists are declared here, at
// registration time; handlers assume the guard already ran.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/forgot-password", cfg.Auth.ForgotPassword)
	authGroup.Post("/reset-password", cfg.Auth.ResetPassword)

	admin := api.Group("/admin")
	// The booking page fetches the roster without a session.
	admin.Get("/public/doctors", cfg.Public.ListDoctors)

	adminOnly := admin.Group("", cfg.Guard.Require(domain.RoleAdmin))
	adminOnly.Post("/add-doctor", cfg.Admin.AddDoctor)
	adminOnly.Get("/doctors", cfg.Admin.ListDoctors)
	adminOnly.Get("/patients", cfg.Admin.ListPatients)
	adminOnly.Put("/edit-doctor/:id", cfg.Admin.EditDoctor)
	adminOnly.Delete("/delete-doctor/:id", cfg.Admin.DeleteDoctor)
	adminOnly.Get("/appointments", cfg.Admin.ListAppointments)
	adminOnly.Patch("/appointments/:id/status", cfg.Admin.UpdateAppointmentStatus)
	adminOnly.Get("/callbacks", cfg.Admin.ListCallbacks)
	adminOnly.Patch("/callbacks/:id/contacted", cfg.Admin.MarkCallbackContacted)
	adminOnly.Delete("/callbacks/:id", cfg.Admin.DeleteCallback)

	doctor := api.Group("/doctor", cfg.Guard.Require(domain.RoleDoctor))
	doctor.Get("/appointments", cfg.Doctor.ListAppointments)
	doctor.Patch("/appointments/:id/status", cfg.Doctor.UpdateAppointmentStatus)
	doctor.Post("/appointments/:id/next", cfg.Doctor.ScheduleNext)
	doctor.Get("/reminders", cfg.Doctor.ListReminders)
	doctor.Post("/reminders", cfg.Doctor.CreateReminder)
	doctor.Patch("/reminders/:id", cfg.Doctor.CompleteReminder)
	doctor.Delete("/reminders/:id", cfg.Doctor.DeleteReminder)
	doctor.Get("/patients", cfg.Doctor.ListPatients)

	patient := api.Group("/patient", cfg.Guard.Require(domain.RolePatient))
	patient.Post("/appointments", cfg.Patient.BookAppointment)
	patient.Get("/dashboard", cfg.Patient.Dashboard)
	patient.Post("/feedback", cfg.Patient.SubmitFeedback)

	api.Get("/feedback/all", cfg.Public.ListFeedback)
	api.Post("/public/callback", cfg.Public.CreateCallback)
}
