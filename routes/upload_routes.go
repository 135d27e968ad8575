package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/naculis/naculis_game/handlers"
	"github.com/naculis/naculis_game/middleware"
)

func UploadRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	uploads := api.Group("/uploads", middleware.Protected())
	uploads.Get("/signature", handlers.GenerateUploadSignature)
}
