package middleware

import (
	"context"
	"strings"

	"quiz-master/internal/domain"
	"quiz-master/internal/dto"
	"quiz-master/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	IdentityKey         = "identity" // Key for storing Identity in fiber.Ctx locals
)

// TokenValidator is the part of the auth service the middleware needs.
type TokenValidator interface {
	ValidateJWT(tokenString string) (*dto.AuthClaims, error)
}

// IdentityLoader resolves the current state of a user.
type IdentityLoader interface {
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
}

// Identity is the verified caller. Admin and blocked flags come from the
// store on every request, not from the token.
type Identity struct {
	UserID    int64
	IsAdmin   bool
	IsBlocked bool
}

func unauthorized(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Code:    code,
		Message: message,
		Status:  fiber.StatusUnauthorized,
	})
}

// Protected is a middleware function that protects routes by requiring a
// valid access token. It stores the caller's Identity in the context.
func Protected(tokens TokenValidator, users IdentityLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return unauthorized(c, "MISSING_AUTH_HEADER", "Authorization header is missing")
		}
		if !strings.HasPrefix(authHeader, BearerSchema) {
			return unauthorized(c, "INVALID_AUTH_SCHEME", "Authorization scheme is not Bearer")
		}
		tokenString := strings.TrimPrefix(authHeader, BearerSchema)
		if tokenString == "" {
			return unauthorized(c, "EMPTY_TOKEN", "Token is empty")
		}

		claims, err := tokens.ValidateJWT(tokenString)
		if err != nil {
			return unauthorized(c, "INVALID_TOKEN", "Token is invalid or expired")
		}

		user, err := users.GetUserByID(c.UserContext(), claims.UserID)
		if err != nil {
			return domain.NewStoreFailureError("failed to load caller", err)
		}
		if user == nil {
			logger.Get().Debug("Token refers to a deleted user", zap.Int64("userID", claims.UserID))
			return unauthorized(c, "UNKNOWN_USER", "User no longer exists")
		}

		c.Locals(IdentityKey, &Identity{UserID: user.ID, IsAdmin: user.IsAdmin, IsBlocked: user.IsBlocked})
		return c.Next()
	}
}

// AdminOnly must run after Protected.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := CurrentIdentity(c)
		if identity == nil {
			return unauthorized(c, "MISSING_IDENTITY", "Authentication required")
		}
		if !identity.IsAdmin {
			return domain.NewForbiddenError("administrator access required")
		}
		return c.Next()
	}
}

// CurrentIdentity returns the Identity set by Protected, or nil.
func CurrentIdentity(c *fiber.Ctx) *Identity {
	identity, _ := c.Locals(IdentityKey).(*Identity)
	return identity
}
