package models

import (
	"time"

	"github.com/google/uuid"
)

type UserProfile struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;unique" json:"user_id"`

	XP          int     `gorm:"default:0" json:"xp"`
	Gem         int     `gorm:"default:0" json:"gem"`
	Level       int     `gorm:"default:0" json:"level"`
	Hearts      int     `gorm:"default:5" json:"hearts"`
	DailyStreak int     `gorm:"default:0" json:"daily_streak"`
	Balance     float64 `gorm:"type:numeric(10,2);default:0.00" json:"balance"`

	DOB               *time.Time `json:"dob"`
	Gender            string     `gorm:"size:10;default:'N'" json:"gender"`
	Country           *string    `gorm:"size:100" json:"country"`
	Phone             *string    `gorm:"size:15" json:"phone"`
	ProfilePictureURL *string    `gorm:"size:255" json:"profile_picture_url"`

	// ReferralCode is generated on creation and never reassigned.
	ReferralCode  string     `gorm:"size:20;not null;unique" json:"referral_code"`
	ReferralLink  string     `gorm:"size:200" json:"referral_link"`
	ReferredByID  *uuid.UUID `gorm:"type:uuid" json:"referred_by_id"`
	ReferralCount int        `gorm:"default:0" json:"referral_count"`

	ReferredBy *UserProfile `gorm:"foreignkey:ReferredByID" json:"-"`
	Discounts  []Discount   `gorm:"foreignkey:ProfileID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
