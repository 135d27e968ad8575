package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for the service layer. Handlers map these to HTTP
// statuses with errors.Is; anything unrecognized is a 500.
var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrExpired            = errors.New("otp expired")
	ErrInvalidOTP         = errors.New("invalid otp")
	ErrAlreadyUsed        = errors.New("discount already used")
	ErrNotVerified        = errors.New("otp not verified for any email")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveAccount    = errors.New("account is inactive")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrEmailSend          = errors.New("failed to send email")
)

func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
