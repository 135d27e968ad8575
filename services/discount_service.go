package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/naculis/naculis_game/models"
)

type DiscountService struct {
	Store Store
	Now   func() time.Time
}

func (s *DiscountService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// List and Get are scoped to the requesting profile; a discount owned by
// someone else is indistinguishable from a missing one.
func (s *DiscountService) List(profileID uuid.UUID) ([]models.Discount, error) {
	return s.Store.DiscountsByProfile(profileID)
}

func (s *DiscountService) Get(id, profileID uuid.UUID) (*models.Discount, error) {
	return s.Store.DiscountOwnedBy(id, profileID)
}

// Use marks the discount used exactly once. A second call is a conflict,
// and the original used_at is never touched again.
func (s *DiscountService) Use(id, profileID uuid.UUID) (*models.Discount, error) {
	var used *models.Discount
	err := s.Store.Transact(func(tx Store) error {
		discount, err := tx.DiscountOwnedBy(id, profileID)
		if err != nil {
			return err
		}
		if discount.Used {
			return ErrAlreadyUsed
		}
		now := s.now()
		discount.Used = true
		discount.UsedAt = &now
		if err := tx.SaveDiscount(discount); err != nil {
			return err
		}
		used = discount
		return nil
	})
	if err != nil {
		return nil, err
	}
	return used, nil
}

// AdminCreate grants a discount to any profile, bypassing ownership
// scoping. Callers are role-gated at the route boundary.
func (s *DiscountService) AdminCreate(profileID uuid.UUID, percent models.Percent, reason string) (*models.Discount, error) {
	if !percent.Valid() {
		return nil, Validationf("percent must be between 0 and 100")
	}
	if reason == "" {
		return nil, Validationf("reason is required")
	}
	if _, err := s.Store.ProfileByID(profileID); err != nil {
		return nil, err
	}

	discount := models.Discount{
		ProfileID: profileID,
		Percent:   percent,
		Reason:    reason,
	}
	if err := s.Store.CreateDiscount(&discount); err != nil {
		return nil, err
	}
	return &discount, nil
}

func (s *DiscountService) AdminDelete(id uuid.UUID) error {
	discount, err := s.Store.DiscountByID(id)
	if err != nil {
		return err
	}
	return s.Store.DeleteDiscount(discount)
}
