package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/naculis/naculis_game/models"
	"github.com/naculis/naculis_game/utils"
	"golang.org/x/crypto/bcrypt"
)

const (
	registrationOTPTTL = 5 * time.Minute

	minSignupPasswordLength = 6
	// Resets enforce a stricter minimum than signups.
	minPasswordLength = 8
)

type RegistrationService struct {
	Store     Store
	Mailer    Mailer
	Referrals *ReferralService
	Now       func() time.Time
}

func (s *RegistrationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type StartRegistrationInput struct {
	Email           string
	Username        string
	Password        string
	ConfirmPassword string
	ReferralCode    *string
}

// Start begins a signup: it replaces any earlier pending registration for
// the email, stores a fresh OTP with a 5-minute expiry and emails it. The
// referral code is captured verbatim; it is only resolved at promotion.
func (s *RegistrationService) Start(in StartRegistrationInput) error {
	email := normalize(in.Email)
	username := normalize(in.Username)

	if in.Password != in.ConfirmPassword {
		return Validationf("passwords do not match")
	}
	if len(in.Password) < minSignupPasswordLength {
		return Validationf("password must be at least %d characters", minSignupPasswordLength)
	}

	taken, err := s.Store.UserExists(email, username)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: email or username already registered", ErrConflict)
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		return err
	}

	pending := models.PendingRegistration{
		Email:        email,
		Username:     username,
		Password:     in.Password,
		OTP:          otp,
		ExpiresAt:    s.now().Add(registrationOTPTTL),
		ReferralCode: in.ReferralCode,
	}
	err = s.Store.Transact(func(tx Store) error {
		if err := tx.DeletePendingByEmail(email); err != nil {
			return err
		}
		return tx.CreatePending(&pending)
	})
	if err != nil {
		return err
	}

	return s.sendOTP(username, email, otp)
}

// Resend regenerates the OTP and expiry on the existing pending record
// and emails the new code. It never creates a new record.
func (s *RegistrationService) Resend(email string) error {
	email = normalize(email)

	pending, err := s.Store.PendingByEmail(email)
	if err != nil {
		return err
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		return err
	}
	pending.OTP = otp
	pending.ExpiresAt = s.now().Add(registrationOTPTTL)
	if err := s.Store.SavePending(pending); err != nil {
		return err
	}

	return s.sendOTP(pending.Username, email, otp)
}

func (s *RegistrationService) sendOTP(username, email, otp string) error {
	body := fmt.Sprintf("<h1>Verify your email</h1><p>Your OTP is: %s</p><p>It expires in 5 minutes.</p>", otp)
	if err := s.Mailer.Send(username, email, "Your Naculis verification code", body); err != nil {
		// The pending record stays valid; the caller can retry via resend.
		return fmt.Errorf("%w: %v", ErrEmailSend, err)
	}
	return nil
}

type VerifyRegistrationResult struct {
	User            *models.User
	Profile         *models.UserProfile
	ReferredBy      *string
	ReferralApplied bool
}

// Verify consumes the pending registration and promotes it to a real
// account. User, profile, pending-row deletion and referral rewards are
// one transaction: a mid-flight store failure rolls all of it back and
// leaves the pending record consumable again.
func (s *RegistrationService) Verify(email, code string) (*VerifyRegistrationResult, error) {
	email = normalize(email)

	pending, err := s.Store.PendingByEmail(email)
	if err != nil {
		return nil, err
	}
	if pending.Expired(s.now()) {
		// Stale rows are inert; drop the record outside the promotion
		// transaction so the delete sticks.
		if err := s.Store.DeletePendingByEmail(email); err != nil {
			return nil, err
		}
		return nil, ErrExpired
	}
	if pending.OTP != code {
		return nil, ErrInvalidOTP
	}

	var res VerifyRegistrationResult
	err = s.Store.Transact(func(tx Store) error {
		// Re-read under the transaction: of two concurrent verify calls
		// only the first finds the row, the second gets ErrNotFound.
		pending, err := tx.PendingByEmail(email)
		if err != nil {
			return err
		}
		if pending.Expired(s.now()) {
			return ErrExpired
		}
		if pending.OTP != code {
			return ErrInvalidOTP
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(pending.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user := models.User{
			Email:    pending.Email,
			Username: pending.Username,
			Password: string(hashed),
			Role:     models.RoleUser,
			IsActive: true,
		}
		if err := tx.CreateUser(&user); err != nil {
			return err
		}

		referralCode, err := utils.GenerateUniqueReferralCode(tx.ReferralCodeExists)
		if err != nil {
			return err
		}
		profile := models.UserProfile{
			UserID:       user.ID,
			Hearts:       5,
			ReferralCode: referralCode,
			ReferralLink: utils.ReferralLink(referralCode),
		}
		if err := tx.CreateProfile(&profile); err != nil {
			return err
		}

		if err := tx.DeletePendingByEmail(email); err != nil {
			return err
		}

		res = VerifyRegistrationResult{User: &user, Profile: &profile}

		if pending.ReferralCode != nil && *pending.ReferralCode != "" {
			outcome, referrer, err := s.Referrals.Apply(tx, &profile, user.Username, *pending.ReferralCode)
			if err != nil {
				return err
			}
			if outcome == ReferralApplied {
				res.ReferralApplied = true
				if referrerUser, err := tx.UserByID(referrer.UserID); err == nil {
					res.ReferredBy = &referrerUser.Username
				}
			}
			// ReferralCodeInvalid is a deliberate soft-fail: the account
			// is created, no rewards are granted.
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
