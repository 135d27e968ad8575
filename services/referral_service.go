package services

import (
	"errors"
	"fmt"

	"github.com/naculis/naculis_game/models"
)

const (
	referrerXPReward  = 20
	referrerGemReward = 1
	refereeXPReward   = 10
	refereeGemReward  = 5

	referrerDiscountPercent = models.Percent(2000) // 20.00%
	refereeDiscountPercent  = models.Percent(5000) // 50.00%
)

type ReferralOutcome int

const (
	// ReferralApplied: both sides rewarded and the new profile linked.
	ReferralApplied ReferralOutcome = iota
	// ReferralCodeInvalid: no profile owns the code. Registration still
	// succeeds; nothing is granted.
	ReferralCodeInvalid
	// ReferralAlreadyLinked: the new profile was already linked, so a
	// repeated application grants nothing.
	ReferralAlreadyLinked
)

type ReferralService struct{}

// Apply links newProfile to the owner of code and grants both sides their
// rewards. It runs on the caller's transaction so the grants commit or
// roll back together with the registration that triggered them.
func (s *ReferralService) Apply(tx Store, newProfile *models.UserProfile, newUsername, code string) (ReferralOutcome, *models.UserProfile, error) {
	referrer, err := tx.ProfileByReferralCode(code)
	if errors.Is(err, ErrNotFound) {
		return ReferralCodeInvalid, nil, nil
	}
	if err != nil {
		return 0, nil, err
	}
	if referrer.ID == newProfile.ID {
		return ReferralCodeInvalid, nil, nil
	}

	// referred_by is set at most once; a retried application must not
	// grant twice.
	if newProfile.ReferredByID != nil {
		return ReferralAlreadyLinked, referrer, nil
	}

	newProfile.ReferredByID = &referrer.ID
	newProfile.XP += refereeXPReward
	newProfile.Gem += refereeGemReward
	if err := tx.SaveProfile(newProfile); err != nil {
		return 0, nil, err
	}

	referrer.XP += referrerXPReward
	referrer.Gem += referrerGemReward
	referrer.ReferralCount++
	if err := tx.SaveProfile(referrer); err != nil {
		return 0, nil, err
	}

	referrerDiscount := models.Discount{
		ProfileID: referrer.ID,
		Percent:   referrerDiscountPercent,
		Reason:    fmt.Sprintf("Referral Reward (for referring %s)", newUsername),
	}
	if err := tx.CreateDiscount(&referrerDiscount); err != nil {
		return 0, nil, err
	}

	refereeDiscount := models.Discount{
		ProfileID: newProfile.ID,
		Percent:   refereeDiscountPercent,
		Reason:    "Referral Sign-up",
	}
	if err := tx.CreateDiscount(&refereeDiscount); err != nil {
		return 0, nil, err
	}

	return ReferralApplied, referrer, nil
}
