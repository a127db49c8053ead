package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/clinic-kit/clinic-service/internal/api/http"
	"github.com/clinic-kit/clinic-service/internal/api/http/handlers"
	"github.com/clinic-kit/clinic-service/internal/auth"
	"github.com/clinic-kit/clinic-service/internal/config"
	"github.com/clinic-kit/clinic-service/internal/domain"
	"github.com/clinic-kit/clinic-service/internal/events"
	"github.com/clinic-kit/clinic-service/internal/observability"
	"github.com/clinic-kit/clinic-service/internal/repository/inmem"
	"github.com/clinic-kit/clinic-service/internal/service"
)

// testBcryptCost keeps hashing fast in tests.
const testBcryptCost = 4

// serverFixture wires the full HTTP surface against in-memory stores.
type serverFixture struct {
	app           *fiber.App
	users         *inmem.UserRepo
	appointments  *inmem.AppointmentRepo
	reminders     *inmem.ReminderRepo
	prescriptions *inmem.PrescriptionRepo
	callbacks     *inmem.CallbackRepo
	feedback      *inmem.FeedbackRepo
	otps          *inmem.OTPStore
	authSvc       *service.AuthService
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	logger := zap.NewNop()
	users := inmem.NewUserRepo()
	appointments := inmem.NewAppointmentRepo(users)
	prescriptions := inmem.NewPrescriptionRepo(users)
	reminders := inmem.NewReminderRepo()
	callbacks := inmem.NewCallbackRepo()
	feedback := inmem.NewFeedbackRepo()
	otps := inmem.NewOTPStore(10 * time.Minute)
	dispatcher := events.NewInMemoryDispatcher()

	authCfg := config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenTTLDays:  7,
		OTPTTLMinutes: 10,
		BcryptCost:    testBcryptCost,
	}
	authSvc := service.NewAuthService(authCfg, service.AuthDependencies{
		UserRepo: users,
		OTPStore: otps,
		Logger:   logger,
	})
	appointmentSvc := service.NewAppointmentService(service.AppointmentDependencies{
		AppointmentRepo:  appointments,
		PrescriptionRepo: prescriptions,
		UserRepo:         users,
		Dispatcher:       dispatcher,
	})
	reminderSvc := service.NewReminderService(reminders, dispatcher)
	rosterSvc := service.NewRosterService(users, dispatcher, testBcryptCost, logger)
	intakeSvc := service.NewIntakeService(callbacks, feedback, dispatcher)

	guard := auth.NewGuard(authSvc.TokenManager(), users)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, observability.NewMetrics(), 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler("clinic-service", "test", nil, nil),
		Auth:    handlers.NewAuthHandler(authSvc),
		Admin:   handlers.NewAdminHandler(rosterSvc, appointmentSvc, intakeSvc),
		Doctor:  handlers.NewDoctorHandler(appointmentSvc, reminderSvc),
		Patient: handlers.NewPatientHandler(appointmentSvc, intakeSvc),
		Public:  handlers.NewPublicHandler(rosterSvc, intakeSvc),
		Guard:   guard,
	})

	return &serverFixture{
		app:           app,
		users:         users,
		appointments:  appointments,
		reminders:     reminders,
		prescriptions: prescriptions,
		callbacks:     callbacks,
		feedback:      feedback,
		otps:          otps,
		authSvc:       authSvc,
	}
}

// seedUser stores an account with a hashed password and returns it.
func (f *serverFixture) seedUser(t *testing.T, name, email, password string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password, testBcryptCost)
	require.NoError(t, err)
	user := &domain.User{
		Name:         name,
		Email:        email,
		Phone:        "5550100",
		PasswordHash: hash,
		Role:         role,
	}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

// tokenFor mints a bearer token the way login does.
func (f *serverFixture) tokenFor(t *testing.T, user *domain.User) string {
	t.Helper()
	token, _, err := f.authSvc.TokenManager().GenerateToken(user.ID, user.Role)
	require.NoError(t, err)
	return token
}

// do issues a request and decodes the JSON body. An empty token sends no
// Authorization header.
func (f *serverFixture) do(t *testing.T, method, path, token string, payload any) (int, map[string]any) {
	t.Helper()

	var reqBody *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}
