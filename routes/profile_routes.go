package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/naculis/naculis_game/handlers"
	"github.com/naculis/naculis_game/middleware"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	profile := api.Group("/profile/me", middleware.Protected())
	profile.Get("", handlers.GetProfile)
	profile.Put("", handlers.UpdateProfile)
}
