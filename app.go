package main

import (
	"errors"
	"time"

	"wardrobe/internal/config"
	"wardrobe/internal/handlers"
	"wardrobe/internal/logger"
	"wardrobe/internal/metrics"
	"wardrobe/internal/middleware"
	"wardrobe/internal/repositories"
	"wardrobe/internal/services"
	"wardrobe/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// newApp wires repositories, services and handlers over store. publisher may be nil.
func newApp(cfg *config.Config, store storage.Backend, publisher services.EventPublisher) (*fiber.App, error) {
	registry := prometheus.NewRegistry()
	if err := metrics.RegisterStore(registry); err != nil {
		return nil, err
	}

	// --- Repositories ---
	userRepo := repositories.NewDocumentUserRepository(store)
	itemRepo := repositories.NewDocumentItemRepository(store)
	outfitRepo := repositories.NewDocumentOutfitRepository(store)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	itemService := services.NewItemService(itemRepo, publisher)
	outfitService := services.NewOutfitService(outfitRepo, itemRepo, publisher)
	imageService := services.NewImageService()

	app := fiber.New(fiber.Config{
		AppName:               "wardrobe",
		ErrorHandler:          errorHandler,
		BodyLimit:             cfg.MaxUploadMB * 1024 * 1024,
		DisableStartupMessage: true,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: cfg.CORSOrigins != "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
	}))
	app.Use(compress.New())

	prom := fiberprometheus.NewWithRegistry(registry, "wardrobe", "http", "", nil)
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Welcome to the Wardrobe API"})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().UTC().Format(time.RFC3339),
			"store":  cfg.StoreBackend,
			"events": publisher != nil,
		})
	})

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	requireAuth := middleware.AuthRequired(authService)

	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1, requireAuth)
	handlers.NewItemHandler(itemService).RegisterRoutes(apiV1, requireAuth)
	handlers.NewOutfitHandler(outfitService).RegisterRoutes(apiV1, requireAuth)
	handlers.NewImageHandler(imageService).RegisterRoutes(apiV1, requireAuth)

	return app, nil
}

// errorHandler renders errors that escape the handlers, including Fiber's own
// 404 and 413, as {"message": ...}.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		logger.Named("http").Error("unhandled error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
	}

	return c.Status(code).JSON(fiber.Map{"message": message})
}
