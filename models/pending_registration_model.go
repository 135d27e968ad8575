package models

import (
	"time"

	"github.com/google/uuid"
)

// PendingRegistration is a signup awaiting OTP verification. The password
// stays plaintext here and is only hashed when the record is promoted to a
// real User; the row is deleted on promotion or replaced by a restarted
// signup for the same email.
type PendingRegistration struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string    `gorm:"size:255;not null;unique"`
	Username     string    `gorm:"size:150;not null"`
	Password     string    `gorm:"not null"`
	OTP          string    `gorm:"size:6;not null"`
	ExpiresAt    time.Time `gorm:"not null"`
	ReferralCode *string   `gorm:"size:20"`

	CreatedAt time.Time
}

func (p *PendingRegistration) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
