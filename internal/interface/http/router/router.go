package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/lumamoveis/catalog-backend/internal/category"
	"github.com/lumamoveis/catalog-backend/internal/config"
	"github.com/lumamoveis/catalog-backend/internal/middleware"
	"github.com/lumamoveis/catalog-backend/internal/product"
)

// New builds the Fiber app with middlewares and every route mounted.
// Protected routes are skipped when no JWT secret is configured.
func New(cfg config.Config, productHandler *product.Handler, categoryHandler *category.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "catalog-backend",
		ErrorHandler: middleware.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,HEAD,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	productHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	if cfg.JWTSecret != "" {
		productHandler.RegisterProtectedRoutes(app, middleware.JWT(cfg.JWTSecret))
	}

	return app
}
