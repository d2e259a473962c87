package handlers

import (
	"wardrobe/internal/logger"
	"wardrobe/internal/middleware"
	"wardrobe/internal/models"
	"wardrobe/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OutfitHandler handles HTTP requests for outfits.
type OutfitHandler struct {
	service  *services.OutfitService
	validate *validator.Validate
	log      *zap.Logger
}

// NewOutfitHandler creates a new OutfitHandler.
func NewOutfitHandler(service *services.OutfitService) *OutfitHandler {
	return &OutfitHandler{
		service:  service,
		validate: newValidator(),
		log:      logger.Named("outfits"),
	}
}

// RegisterRoutes registers the outfit routes behind the given middleware.
func (h *OutfitHandler) RegisterRoutes(router fiber.Router, mw ...fiber.Handler) {
	outfitRoutes := router.Group("/outfits", mw...)
	outfitRoutes.Get("/", h.HandleGetOutfits)
	outfitRoutes.Post("/", h.HandleCreateOutfit)
	outfitRoutes.Get("/:id", h.HandleGetOutfit)
	outfitRoutes.Patch("/:id", h.HandleUpdateOutfit)
	outfitRoutes.Delete("/:id", h.HandleDeleteOutfit)
}

// HandleGetOutfits lists the caller's outfits.
func (h *OutfitHandler) HandleGetOutfits(c *fiber.Ctx) error {
	outfits, err := h.service.ListOutfits(middleware.UserID(c))
	if err != nil {
		return respondError(c, h.log, err, "Could not retrieve outfits")
	}
	return c.JSON(outfits)
}

// HandleGetOutfit returns one outfit.
func (h *OutfitHandler) HandleGetOutfit(c *fiber.Ctx) error {
	outfit, err := h.service.GetOutfit(middleware.UserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, "Could not retrieve outfit")
	}
	return c.JSON(outfit)
}

// HandleCreateOutfit creates an outfit after checking its items.
func (h *OutfitHandler) HandleCreateOutfit(c *fiber.Ctx) error {
	var req models.Outfit
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	outfit, err := h.service.CreateOutfit(middleware.UserID(c), req)
	if err != nil {
		return respondError(c, h.log, err, "Could not create outfit")
	}
	return c.Status(fiber.StatusCreated).JSON(outfit)
}

// HandleUpdateOutfit applies a partial update.
func (h *OutfitHandler) HandleUpdateOutfit(c *fiber.Ctx) error {
	var patch models.OutfitPatch
	if err := c.BodyParser(&patch); err != nil {
		return invalidBody(c, err)
	}
	if err := h.validate.Struct(patch); err != nil {
		return validationFailed(c, err)
	}

	outfit, err := h.service.UpdateOutfit(middleware.UserID(c), c.Params("id"), patch)
	if err != nil {
		return respondError(c, h.log, err, "Could not update outfit")
	}
	return c.JSON(outfit)
}

// HandleDeleteOutfit deletes an outfit. Its items stay.
func (h *OutfitHandler) HandleDeleteOutfit(c *fiber.Ctx) error {
	if err := h.service.DeleteOutfit(middleware.UserID(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err, "Could not delete outfit")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
