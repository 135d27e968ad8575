package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type UpdateProfileRequest struct {
	DOB               *string `json:"dob"` // YYYY-MM-DD
	Gender            *string `json:"gender" validate:"omitempty,oneof=M F O N"`
	Country           *string `json:"country"`
	Phone             *string `json:"phone" validate:"omitempty,max=15"`
	ProfilePictureURL *string `json:"profile_picture_url" validate:"omitempty,url"`
}

func GetProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	user, err := store.UserByID(userID)
	if err != nil {
		return fail(c, err)
	}
	profile, err := store.ProfileByUserID(userID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"user": user, "profile": profile})
}

func UpdateProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	profile, err := store.ProfileByUserID(userID)
	if err != nil {
		return fail(c, err)
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.DOB != nil {
		dob, err := time.Parse("2006-01-02", *req.DOB)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dob must be YYYY-MM-DD"})
		}
		profile.DOB = &dob
	}
	if req.Gender != nil {
		profile.Gender = *req.Gender
	}
	if req.Country != nil {
		profile.Country = req.Country
	}
	if req.Phone != nil {
		profile.Phone = req.Phone
	}
	if req.ProfilePictureURL != nil {
		if old := profile.ProfilePictureURL; old != nil && *old != *req.ProfilePictureURL {
			go DestroyImage(*old)
		}
		profile.ProfilePictureURL = req.ProfilePictureURL
	}

	if err := store.SaveProfile(profile); err != nil {
		return fail(c, err)
	}
	return c.JSON(profile)
}
