package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	config "github.com/naculis/naculis_game/configs"
	"github.com/naculis/naculis_game/database"
	"github.com/naculis/naculis_game/handlers"
	"github.com/naculis/naculis_game/jobs"
	"github.com/naculis/naculis_game/notifications"
	"github.com/naculis/naculis_game/routes"
	"github.com/naculis/naculis_game/services"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.ConnectRedis()
	database.SeedAdmin()

	var mailer services.Mailer = notifications.LogSender{}
	if brevo := notifications.InitEmailService(); brevo != nil {
		mailer = brevo
	}

	store := database.NewStore()
	kv := database.NewKV()

	tokenService := &services.TokenService{Secret: []byte(config.Config("JWT_SECRET")), KV: kv}
	otpService := &services.OTPService{KV: kv, Mailer: mailer}
	registrationService := &services.RegistrationService{
		Store:     store,
		Mailer:    mailer,
		Referrals: &services.ReferralService{},
	}
	authService := &services.AuthService{Store: store, Tokens: tokenService}
	passwordService := &services.PasswordService{Store: store, OTP: otpService}
	discountService := &services.DiscountService{Store: store}

	handlers.Init(registrationService, authService, tokenService, otpService, passwordService, discountService, store)

	c := cron.New()
	c.AddFunc("*/10 * * * *", jobs.PurgeExpiredPendingRegistrations)
	go c.Start()
	log.Println("✅ Cron job for pending-registration cleanup scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "Naculis Game",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to Naculis Game API",
		})
	})

	routes.AuthRoutes(app)
	routes.ProfileRoutes(app)
	routes.DiscountRoutes(app)
	routes.AdminRoutes(app)
	routes.UploadRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("✅ Server is running on port 8080")
	err := app.Listen(":8080")
	if err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
