package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/clinic-kit/clinic-service/internal/auth"
	"github.com/clinic-kit/clinic-service/internal/config"
	"github.com/clinic-kit/clinic-service/internal/domain"
	"github.com/clinic-kit/clinic-service/internal/repository"
	apperrors "github.com/clinic-kit/clinic-service/pkg/util"
)

// AuthService coordinates registration, login and password reset flows.
type AuthService struct {
	users      repository.UserRepository
	otps       repository.OTPStore
	tokenMgr   *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	OTPStore repository.OTPStore
	Logger   *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		otps:       deps.OTPStore,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL()),
		bcryptCost: cfg.BcryptCost,
		logger:     deps.Logger,
	}
}

// Register creates a patient or admin account. Doctor accounts only come
// from the admin roster flow.
func (s *AuthService) Register(ctx context.Context, name, email, phone, password string, role domain.Role) (*domain.User, error) {
	if role == domain.RoleDoctor {
		return nil, apperrors.NewForbidden("Doctors can only be added by Admin.")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewValidationError("Email already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates an account by email within the requested role and
// issues a bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string, role domain.Role) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmailAndRole(ctx, email, role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewNotFound("Invalid Email or Role")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewValidationError("Invalid Password")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// RequestPasswordReset stores a fresh one-time code for the account. The
// code is only logged; delivery channels are out of scope.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Email not found")
		}
		return err
	}

	code := fmt.Sprintf("%06d", 100000+rand.Intn(900000))
	if err := s.otps.Save(ctx, email, code); err != nil {
		return err
	}

	s.logger.Info("password reset code issued", zap.String("email", email), zap.String("otp", code))
	return nil
}

// ConfirmPasswordReset validates the one-time code and updates the password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("User not found")
		}
		return err
	}

	stored, err := s.otps.Get(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrOTPNotFound) {
			return apperrors.NewValidationError("OTP expired. Try again")
		}
		return err
	}
	if stored != code {
		return apperrors.NewValidationError("Invalid OTP")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	return s.otps.Delete(ctx, email)
}

// TokenManager exposes the underlying token manager for the guard.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
