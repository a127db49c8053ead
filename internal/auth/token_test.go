package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/clinic-kit/clinic-service/internal/domain"
)

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, expiresAt, err := tm.GenerateToken("user-123", domain.RoleDoctor)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.SubjectID)
	require.Equal(t, domain.RoleDoctor, claims.Role)
	require.Equal(t, "user-123", claims.Subject)
}

func TestParseTokenWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, _, err := issuer.GenerateToken("user-123", domain.RolePatient)
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	require.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	tm := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}

	token, _, err := tm.GenerateToken("user-123", domain.RolePatient)
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	require.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	_, err := tm.ParseToken("not-a-jwt")
	require.Error(t, err)
}

func TestParseTokenRejectsUnsignedAlgorithm(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	claims := &Claims{
		SubjectID: "user-123",
		Role:      domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	require.Error(t, err)
}

func TestNewTokenManagerDefaultTTL(t *testing.T) {
	tm := NewTokenManager("test-secret", 0)

	_, expiresAt, err := tm.GenerateToken("user-123", domain.RolePatient)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, 5*time.Second)
}
