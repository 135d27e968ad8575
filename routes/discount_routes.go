package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/naculis/naculis_game/handlers"
	"github.com/naculis/naculis_game/middleware"
)

func DiscountRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	discounts := api.Group("/discounts", middleware.Protected())
	discounts.Get("", handlers.ListDiscounts)
	discounts.Get("/:discountId", handlers.GetDiscount)
	discounts.Post("/:discountId/use", handlers.UseDiscount)
}
