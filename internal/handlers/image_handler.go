package handlers

import (
	"encoding/base64"
	"errors"
	"io"
	"strings"

	"wardrobe/internal/imageproc"
	"wardrobe/internal/logger"
	"wardrobe/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ImageHandler handles image processing requests.
type ImageHandler struct {
	service *services.ImageService
	log     *zap.Logger
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(service *services.ImageService) *ImageHandler {
	return &ImageHandler{
		service: service,
		log:     logger.Named("images"),
	}
}

// RegisterRoutes registers the image routes behind the given middleware.
func (h *ImageHandler) RegisterRoutes(router fiber.Router, mw ...fiber.Handler) {
	imageRoutes := router.Group("/images", mw...)
	imageRoutes.Post("/remove-background", h.HandleRemoveBackground)
}

// HandleRemoveBackground takes a multipart "file" upload and returns the cut-out
// PNG as base64.
func (h *ImageHandler) HandleRemoveBackground(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No file uploaded",
			"error":   err.Error(),
		})
	}
	if ct := fh.Header.Get(fiber.HeaderContentType); ct != "" && !strings.HasPrefix(ct, "image/") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "File must be an image",
		})
	}

	f, err := fh.Open()
	if err != nil {
		return respondError(c, h.log, err, "Could not read upload")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return respondError(c, h.log, err, "Could not read upload")
	}

	out, err := h.service.RemoveBackground(data)
	switch {
	case errors.Is(err, imageproc.ErrNoForeground):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not detect clothing item in image",
		})
	case errors.Is(err, imageproc.ErrDecode):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "File must be an image",
			"error":   err.Error(),
		})
	case err != nil:
		return respondError(c, h.log, err, "Image processing failed")
	}

	return c.JSON(fiber.Map{
		"filename":     out.Filename,
		"content_type": out.ContentType,
		"base64_image": base64.StdEncoding.EncodeToString(out.Data),
	})
}
