package server

import (
	"github.com/Kyz7/portfolio/internal/config"
	"github.com/gofiber/fiber/v2"
)

func New(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 100 * 1024 * 1024,
	})

	app.Static("/assets/images", cfg.AssetsDir, fiber.Static{
		Compress:  true,
		ByteRange: true,
		Browse:    false,
		MaxAge:    3600,
	})
	app.Static("/", cfg.WebDir)

	SetupRoutes(app)

	return app
}
