package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/naculis/naculis_game/utils"
)

const (
	resetOTPKeyPrefix = "pwdreset:otp:"
	resetVerifiedKey  = "pwdreset:verified"

	resetOTPTTL      = 5 * time.Minute
	resetVerifiedTTL = 10 * time.Minute
)

// OTPService is the password-reset OTP ledger. Entries live in the KV
// store under their own key prefix, so registration OTPs (which live in
// the pending_registrations table) can never be consumed here.
type OTPService struct {
	KV     KV
	Mailer Mailer
	Now    func() time.Time
}

func (s *OTPService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// The entry keeps its own expires_at besides the key TTL, so an expired
// but not yet evicted entry is reported as Expired rather than NotFound.
type otpEntry struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SendResetOTP issues a fresh code for email, overwriting any earlier
// un-consumed one, and emails it. A send failure is surfaced, but the
// stored code stays valid so the caller can simply request it again.
func (s *OTPService) SendResetOTP(ctx context.Context, email string) error {
	email = normalize(email)

	code, err := utils.GenerateOTP()
	if err != nil {
		return err
	}

	entry, err := json.Marshal(otpEntry{Code: code, ExpiresAt: s.now().Add(resetOTPTTL)})
	if err != nil {
		return err
	}
	if err := s.KV.Set(ctx, resetOTPKeyPrefix+email, string(entry), 2*resetOTPTTL); err != nil {
		return err
	}

	body := fmt.Sprintf("<h1>Password Reset</h1><p>Your OTP is: %s</p><p>It expires in 5 minutes.</p>", code)
	if err := s.Mailer.Send("", email, "Your OTP for Password Reset", body); err != nil {
		return fmt.Errorf("%w: %v", ErrEmailSend, err)
	}
	return nil
}

// VerifyResetOTP consumes the code and records email in the single-slot
// verified marker read by the next password reset.
func (s *OTPService) VerifyResetOTP(ctx context.Context, email, code string) error {
	email = normalize(email)
	key := resetOTPKeyPrefix + email

	raw, err := s.KV.Get(ctx, key)
	if err != nil {
		return err
	}

	var entry otpEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return err
	}
	if s.now().After(entry.ExpiresAt) {
		// Stale entries are deleted on sight.
		if err := s.KV.Del(ctx, key); err != nil {
			return err
		}
		return ErrExpired
	}
	if entry.Code != code {
		return ErrInvalidOTP
	}

	if err := s.KV.Del(ctx, key); err != nil {
		return err
	}
	return s.KV.Set(ctx, resetVerifiedKey, email, resetVerifiedTTL)
}

// VerifiedEmail reports which email the last successful OTP verification
// was for, without consuming the marker.
func (s *OTPService) VerifiedEmail(ctx context.Context) (string, error) {
	email, err := s.KV.Get(ctx, resetVerifiedKey)
	if err != nil {
		return "", ErrNotVerified
	}
	return email, nil
}

func (s *OTPService) ClearVerified(ctx context.Context) error {
	return s.KV.Del(ctx, resetVerifiedKey)
}
