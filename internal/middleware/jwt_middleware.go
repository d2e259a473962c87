package middleware

import (
	"strings"

	"wardrobe/internal/logger"
	"wardrobe/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UserIDKey is the c.Locals key holding the authenticated user's id.
const UserIDKey = "user_id"

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	log := logger.Named("auth")
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "Authorization header is required")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return unauthorized(c, "Authorization header format must be 'Bearer <token>'")
		}

		userID, err := authService.ResolveToken(parts[1])
		if err != nil {
			log.Debug("JWT validation failed", zap.String("path", c.Path()), zap.Error(err))
			return unauthorized(c, "Could not validate credentials")
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// UserID returns the id stored by AuthRequired.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}

func unauthorized(c *fiber.Ctx, message string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": message,
	})
}
