package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/naculis/naculis_game/database"
	"github.com/naculis/naculis_game/models"
)

type AdminCreateDiscountRequest struct {
	ProfileID string         `json:"profile_id" validate:"required,uuid"`
	Percent   models.Percent `json:"percent"`
	Reason    string         `json:"reason" validate:"required"`
}

func AdminListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.DB.Preload("Profile").Order("created_at desc").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list users"})
	}
	return c.JSON(users)
}

func AdminSetUserActive(active bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := uuid.Parse(c.Params("userId"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
		}

		user, err := store.UserByID(userID)
		if err != nil {
			return fail(c, err)
		}
		user.IsActive = active
		if err := store.SaveUser(user); err != nil {
			return fail(c, err)
		}
		return c.JSON(user)
	}
}

func AdminCreateDiscount(c *fiber.Ctx) error {
	var req AdminCreateDiscountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	profileID, err := uuid.Parse(req.ProfileID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid profile id"})
	}

	discount, err := discounts.AdminCreate(profileID, req.Percent, req.Reason)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(discount)
}

func AdminDeleteDiscount(c *fiber.Ctx) error {
	discountID, err := uuid.Parse(c.Params("discountId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid discount id"})
	}

	if err := discounts.AdminDelete(discountID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"msg": "Discount deleted"})
}
