package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/naculis/naculis_game/services"
)

type StartRegistrationRequest struct {
	Email           string  `json:"email" validate:"required,email"`
	Username        string  `json:"username" validate:"required,min=3"`
	Password        string  `json:"password" validate:"required"`
	ConfirmPassword string  `json:"confirm_password" validate:"required"`
	ReferralCode    *string `json:"referral_code,omitempty"`
}

type VerifyRegistrationRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6"`
}

type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"remember_me"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

func StartRegistration(c *fiber.Ctx) error {
	var req StartRegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	err := registration.Start(services.StartRegistrationInput{
		Email:           req.Email,
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		ReferralCode:    req.ReferralCode,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"msg": "OTP sent to email"})
}

func VerifyRegistration(c *fiber.Ctx) error {
	var req VerifyRegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	res, err := registration.Verify(req.Email, req.OTP)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"msg": "User registered successfully",
		"user": fiber.Map{
			"id":       res.User.ID,
			"email":    res.User.Email,
			"username": res.User.Username,
			"role":     res.User.Role,
		},
		"referral_code":    res.Profile.ReferralCode,
		"referral_link":    res.Profile.ReferralLink,
		"referred_by":      res.ReferredBy,
		"referral_applied": res.ReferralApplied,
	})
}

func ResendRegistrationOTP(c *fiber.Ctx) error {
	var req EmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := registration.Resend(req.Email); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"msg": "OTP resent to email"})
}

func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	pair, err := auth.Login(req.Email, req.Username, req.Password, req.RememberMe)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(pair)
}

func RefreshToken(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	access, err := tokens.RefreshAccess(c.Context(), req.Refresh)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"access": access})
}

func Logout(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := tokens.Blacklist(c.Context(), req.Refresh); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"msg": "Logged out successfully"})
}

func DeleteAccount(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	if err := auth.DeleteAccount(userID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"msg": "Account deleted"})
}
