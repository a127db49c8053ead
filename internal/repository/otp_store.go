package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrOTPNotFound reports a missing or expired reset code.
var ErrOTPNotFound = errors.New("otp not found")

// OTPStore keeps short-lived password reset codes keyed by email.
type OTPStore interface {
	Save(ctx context.Context, email, code string) error
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

type otpStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewOTPStore returns a Redis-backed implementation. Expiry is enforced by
// key TTL; a vanished key reads as ErrOTPNotFound.
func NewOTPStore(client *redis.Client, ttl time.Duration) OTPStore {
	return &otpStore{client: client, ttl: ttl}
}

func otpKey(email string) string {
	return "otp:" + email
}

func (s *otpStore) Save(ctx context.Context, email, code string) error {
	return s.client.Set(ctx, otpKey(email), code, s.ttl).Err()
}

func (s *otpStore) Get(ctx context.Context, email string) (string, error) {
	code, err := s.client.Get(ctx, otpKey(email)).Result()
	if err == redis.Nil {
		return "", ErrOTPNotFound
	}
	if err != nil {
		return "", err
	}
	return code, nil
}

func (s *otpStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, otpKey(email)).Err()
}
