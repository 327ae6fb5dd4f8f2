package server

import (
	"github.com/Kyz7/portfolio/internal/assets"
	"github.com/Kyz7/portfolio/internal/cards"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	// Middleware
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Portfolio API is running",
		})
	})

	api := app.Group("/api")

	// Card store
	api.Get("/cards", cards.ListCardsHandler)
	api.Post("/save-cards", cards.SaveCardsHandler)

	// Asset library
	api.Get("/assets", assets.ListAssetsHandler)
	api.Get("/folders", assets.ListFoldersHandler)
	api.Get("/folder-assets", assets.FolderAssetsHandler)
	api.Post("/check-file", assets.CheckFileHandler)
	api.Post("/upload", assets.UploadHandler)
}
