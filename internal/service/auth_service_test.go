package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clinic-kit/clinic-service/internal/config"
	"github.com/clinic-kit/clinic-service/internal/domain"
	"github.com/clinic-kit/clinic-service/internal/repository/inmem"
	"github.com/clinic-kit/clinic-service/internal/service"
)

func newAuthService(t *testing.T) (*service.AuthService, *inmem.UserRepo, *inmem.OTPStore) {
	t.Helper()
	users := inmem.NewUserRepo()
	otps := inmem.NewOTPStore(10 * time.Minute)
	cfg := config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenTTLDays:  7,
		OTPTTLMinutes: 10,
		BcryptCost:    4,
	}
	svc := service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo: users,
		OTPStore: otps,
		Logger:   zap.NewNop(),
	})
	return svc, users, otps
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	svc, users, _ := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Asha", "asha@clinic.test", "5550101", "s3cret", domain.RolePatient)
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, domain.RolePatient, user.Role)
	require.NotEqual(t, "s3cret", user.PasswordHash)

	stored, err := users.GetByEmail(ctx, "asha@clinic.test")
	require.NoError(t, err)
	require.Equal(t, user.ID, stored.ID)
}

func TestRegisterRejectsDoctorRole(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), "Mallory", "mallory@clinic.test", "5550102", "pw", domain.RoleDoctor)
	require.EqualError(t, err, "Doctors can only be added by Admin.")
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Asha", "asha@clinic.test", "5550101", "pw", domain.RolePatient)
	require.NoError(t, err)

	// Same address, different role: the address is still taken.
	_, err = svc.Register(ctx, "Asha Admin", "asha@clinic.test", "5550103", "pw", domain.RoleAdmin)
	require.EqualError(t, err, "Email already exists")
}

func TestLoginVerifiesRoleAndPassword(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Asha", "asha@clinic.test", "5550101", "s3cret", domain.RolePatient)
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "asha@clinic.test", "s3cret", domain.RoleAdmin)
	require.EqualError(t, err, "Invalid Email or Role")

	_, _, _, err = svc.Login(ctx, "asha@clinic.test", "wrong", domain.RolePatient)
	require.EqualError(t, err, "Invalid Password")

	user, token, expiresAt, err := svc.Login(ctx, "asha@clinic.test", "s3cret", domain.RolePatient)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.True(t, expiresAt.After(time.Now()))

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.SubjectID)
	require.Equal(t, domain.RolePatient, claims.Role)
}

func TestPasswordResetRoundTrip(t *testing.T) {
	svc, _, otps := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Asha", "asha@clinic.test", "5550101", "oldpass", domain.RolePatient)
	require.NoError(t, err)

	require.EqualError(t, svc.RequestPasswordReset(ctx, "nobody@clinic.test"), "Email not found")
	require.NoError(t, svc.RequestPasswordReset(ctx, "asha@clinic.test"))

	code, err := otps.Get(ctx, "asha@clinic.test")
	require.NoError(t, err)
	require.Len(t, code, 6)

	require.EqualError(t, svc.ConfirmPasswordReset(ctx, "asha@clinic.test", "000000", "newpass"), "Invalid OTP")
	require.NoError(t, svc.ConfirmPasswordReset(ctx, "asha@clinic.test", code, "newpass"))

	// The consumed code no longer resolves.
	require.EqualError(t, svc.ConfirmPasswordReset(ctx, "asha@clinic.test", code, "again"), "OTP expired. Try again")

	_, _, _, err = svc.Login(ctx, "asha@clinic.test", "newpass", domain.RolePatient)
	require.NoError(t, err)
}

func TestExpiredOTPRejected(t *testing.T) {
	users := inmem.NewUserRepo()
	otps := inmem.NewOTPStore(-time.Minute)
	cfg := config.AuthConfig{JWTSecret: "test-secret", BcryptCost: 4}
	svc := service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo: users,
		OTPStore: otps,
		Logger:   zap.NewNop(),
	})
	ctx := context.Background()

	_, err := svc.Register(ctx, "Asha", "asha@clinic.test", "5550101", "oldpass", domain.RolePatient)
	require.NoError(t, err)
	require.NoError(t, svc.RequestPasswordReset(ctx, "asha@clinic.test"))

	err = svc.ConfirmPasswordReset(ctx, "asha@clinic.test", "123456", "newpass")
	require.EqualError(t, err, "OTP expired. Try again")
}
