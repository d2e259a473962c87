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

// ItemHandler handles HTTP requests for clothing items.
type ItemHandler struct {
	service  *services.ItemService
	validate *validator.Validate
	log      *zap.Logger
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service *services.ItemService) *ItemHandler {
	return &ItemHandler{
		service:  service,
		validate: newValidator(),
		log:      logger.Named("items"),
	}
}

// RegisterRoutes registers the item routes behind the given middleware.
func (h *ItemHandler) RegisterRoutes(router fiber.Router, mw ...fiber.Handler) {
	itemRoutes := router.Group("/items", mw...)
	itemRoutes.Get("/", h.HandleGetItems)
	itemRoutes.Post("/", h.HandleCreateItem)
	itemRoutes.Get("/:id", h.HandleGetItem)
	itemRoutes.Patch("/:id", h.HandleUpdateItem)
	itemRoutes.Delete("/:id", h.HandleDeleteItem)
}

// HandleGetItems lists the caller's items.
func (h *ItemHandler) HandleGetItems(c *fiber.Ctx) error {
	items, err := h.service.ListItems(middleware.UserID(c))
	if err != nil {
		return respondError(c, h.log, err, "Could not retrieve items")
	}
	return c.JSON(items)
}

// HandleGetItem returns one item.
func (h *ItemHandler) HandleGetItem(c *fiber.Ctx) error {
	item, err := h.service.GetItem(middleware.UserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, "Could not retrieve item")
	}
	return c.JSON(item)
}

// HandleCreateItem creates an item.
func (h *ItemHandler) HandleCreateItem(c *fiber.Ctx) error {
	var req models.Item
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	item, err := h.service.CreateItem(middleware.UserID(c), req)
	if err != nil {
		return respondError(c, h.log, err, "Could not create item")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdateItem applies a partial update.
func (h *ItemHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var patch models.ItemPatch
	if err := c.BodyParser(&patch); err != nil {
		return invalidBody(c, err)
	}
	if err := h.validate.Struct(patch); err != nil {
		return validationFailed(c, err)
	}

	item, err := h.service.UpdateItem(middleware.UserID(c), c.Params("id"), patch)
	if err != nil {
		return respondError(c, h.log, err, "Could not update item")
	}
	return c.JSON(item)
}

// HandleDeleteItem deletes an item and removes it from every outfit.
func (h *ItemHandler) HandleDeleteItem(c *fiber.Ctx) error {
	if err := h.service.DeleteItem(middleware.UserID(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err, "Could not delete item")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
