package services

import (
	"context"

	"golang.org/x/crypto/bcrypt"
)

type PasswordService struct {
	Store Store
	OTP   *OTPService
}

// Reset updates the password of whichever email the verified marker
// points at. Validation runs first; the marker is only consumed once the
// new hash is saved, so a failed attempt can be retried.
func (s *PasswordService) Reset(ctx context.Context, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return Validationf("passwords do not match")
	}
	if len(newPassword) < minPasswordLength {
		return Validationf("password must be at least %d characters", minPasswordLength)
	}

	email, err := s.OTP.VerifiedEmail(ctx)
	if err != nil {
		return err
	}

	user, err := s.Store.UserByEmail(email)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	if err := s.Store.SaveUser(user); err != nil {
		return err
	}

	return s.OTP.ClearVerified(ctx)
}
