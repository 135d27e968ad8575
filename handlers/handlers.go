package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/naculis/naculis_game/services"
)

var validate = validator.New()

var (
	registration *services.RegistrationService
	auth         *services.AuthService
	tokens       *services.TokenService
	otp          *services.OTPService
	passwords    *services.PasswordService
	discounts    *services.DiscountService
	store        services.Store
)

// Init wires the service layer into the handler package. Called once
// from main after the stores are connected.
func Init(
	reg *services.RegistrationService,
	a *services.AuthService,
	t *services.TokenService,
	o *services.OTPService,
	p *services.PasswordService,
	d *services.DiscountService,
	s services.Store,
) {
	registration = reg
	auth = a
	tokens = t
	otp = o
	passwords = p
	discounts = d
	store = s
}

// fail maps service sentinel errors onto HTTP statuses.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrInvalidOTP):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrNotVerified):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrConflict):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrAlreadyUsed):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrExpired):
		status = fiber.StatusGone
	case errors.Is(err, services.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
	case errors.Is(err, services.ErrInvalidToken):
		status = fiber.StatusUnauthorized
	case errors.Is(err, services.ErrInactiveAccount):
		status = fiber.StatusForbidden
	case errors.Is(err, services.ErrEmailSend):
		status = fiber.StatusBadGateway
	}
	if status == fiber.StatusInternalServerError {
		return c.Status(status).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// currentUserID reads the authenticated user id from the access token.
func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	raw, _ := claims["user_id"].(string)
	return uuid.Parse(raw)
}
