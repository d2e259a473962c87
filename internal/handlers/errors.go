package handlers

import (
	"errors"

	"wardrobe/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// respondError maps a service error to a status code. Client errors carry only
// a message; anything unexpected is logged and answered with 500 and fallback.
func respondError(c *fiber.Ctx, log *zap.Logger, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrItemNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Item not found"})
	case errors.Is(err, services.ErrOutfitNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Outfit not found"})
	case errors.Is(err, services.ErrInvalidItemReference):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, services.ErrEmailTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Email already registered"})
	case services.IsAuthError(err):
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Could not validate credentials"})
	}

	log.Error(fallback, zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": fallback,
		"error":   err.Error(),
	})
}
