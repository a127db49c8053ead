package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/clinic-kit/clinic-service/internal/domain"
	"github.com/clinic-kit/clinic-service/internal/repository"
	apperrors "github.com/clinic-kit/clinic-service/pkg/util"
)

const identityKey = "auth_identity"

// Guard authorizes protected requests. It resolves the caller from the
// bearer token, re-reads the account from storage, checks the per-route
// role allow-list and attaches the account to the request context.
//
// The guard is stateless and never caches: deleting an account blocks its
// next request even while the token remains cryptographically valid.
type Guard struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewGuard constructs the guard.
func NewGuard(tokens *TokenManager, users repository.UserRepository) *Guard {
	return &Guard{tokens: tokens, users: users}
}

// Require returns a middleware admitting only callers whose stored role is
// in the allow-list. An empty allow-list admits any authenticated caller.
//
// Token failures and missing subjects collapse into one "Invalid token"
// response so clients cannot probe which accounts exist.
func (g *Guard) Require(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return apperrors.NewUnauthorized("No token provided")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return apperrors.NewUnauthorized("No token provided")
		}

		claims, err := g.tokens.ParseToken(parts[1])
		if err != nil {
			return apperrors.NewUnauthorized("Invalid token")
		}

		user, err := g.users.GetByID(c.Context(), claims.SubjectID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewUnauthorized("Invalid token")
			}
			return apperrors.MapError(err)
		}

		// The stored role decides, not the claim; a role change after
		// issuance takes effect on the next request. Unknown roles can
		// never pass an allow-list.
		switch user.Role {
		case domain.RolePatient, domain.RoleDoctor, domain.RoleAdmin:
		default:
			return apperrors.NewUnauthorized("Invalid token")
		}

		if len(allowedSet) > 0 {
			if _, ok := allowedSet[user.Role]; !ok {
				return apperrors.NewForbidden("Access denied")
			}
		}

		c.Locals(identityKey, user)
		return c.Next()
	}
}

// IdentityFromContext retrieves the authenticated account.
func IdentityFromContext(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}
