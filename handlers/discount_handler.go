package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ownProfileID resolves the authenticated user's profile; discount reads
// and writes are always scoped to it.
func ownProfileID(c *fiber.Ctx) (uuid.UUID, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return uuid.Nil, err
	}
	profile, err := store.ProfileByUserID(userID)
	if err != nil {
		return uuid.Nil, err
	}
	return profile.ID, nil
}

func ListDiscounts(c *fiber.Ctx) error {
	profileID, err := ownProfileID(c)
	if err != nil {
		return fail(c, err)
	}

	list, err := discounts.List(profileID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

func GetDiscount(c *fiber.Ctx) error {
	profileID, err := ownProfileID(c)
	if err != nil {
		return fail(c, err)
	}

	discountID, err := uuid.Parse(c.Params("discountId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid discount id"})
	}

	discount, err := discounts.Get(discountID, profileID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(discount)
}

func UseDiscount(c *fiber.Ctx) error {
	profileID, err := ownProfileID(c)
	if err != nil {
		return fail(c, err)
	}

	discountID, err := uuid.Parse(c.Params("discountId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid discount id"})
	}

	discount, err := discounts.Use(discountID, profileID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(discount)
}
