package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/naculis/naculis_game/handlers"
	"github.com/naculis/naculis_game/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected())

	admin.Get("/users", middleware.AdminRequired(), handlers.AdminListUsers)
	admin.Post("/users/:userId/deactivate", middleware.AdminRequired(), handlers.AdminSetUserActive(false))
	admin.Post("/users/:userId/reactivate", middleware.AdminRequired(), handlers.AdminSetUserActive(true))

	admin.Post("/discounts", middleware.StaffRequired(), handlers.AdminCreateDiscount)
	admin.Delete("/discounts/:discountId", middleware.StaffRequired(), handlers.AdminDeleteDiscount)
}
