package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/naculis/naculis_game/handlers"
	"github.com/naculis/naculis_game/middleware"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.StartRegistration)
	auth.Post("/register/verify", handlers.VerifyRegistration)
	auth.Post("/register/resend-otp", handlers.ResendRegistrationOTP)
	auth.Post("/login", handlers.Login)
	auth.Post("/refresh", handlers.RefreshToken)
	auth.Post("/logout", handlers.Logout)
	auth.Delete("/me", middleware.Protected(), handlers.DeleteAccount)

	auth.Post("/send-otp", handlers.SendResetOTP)
	auth.Post("/verify-otp", handlers.VerifyResetOTP)
	auth.Post("/reset-password", handlers.ResetPassword)
}
