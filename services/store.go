package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/naculis/naculis_game/models"
)

// Store is the persistence surface the services need. The GORM-backed
// implementation lives in the database package; tests use an in-memory
// fake. Lookup methods return ErrNotFound when no row matches.
type Store interface {
	// Transact runs fn against a store bound to a single transaction;
	// fn returning an error rolls everything back.
	Transact(fn func(tx Store) error) error

	UserByID(id uuid.UUID) (*models.User, error)
	UserByEmail(email string) (*models.User, error)
	UserByEmailAndUsername(email, username string) (*models.User, error)
	UserExists(email, username string) (bool, error)
	CreateUser(u *models.User) error
	SaveUser(u *models.User) error
	DeleteUser(u *models.User) error

	ProfileByUserID(userID uuid.UUID) (*models.UserProfile, error)
	ProfileByID(id uuid.UUID) (*models.UserProfile, error)
	ProfileByReferralCode(code string) (*models.UserProfile, error)
	ReferralCodeExists(code string) (bool, error)
	CreateProfile(p *models.UserProfile) error
	SaveProfile(p *models.UserProfile) error

	PendingByEmail(email string) (*models.PendingRegistration, error)
	CreatePending(p *models.PendingRegistration) error
	SavePending(p *models.PendingRegistration) error
	DeletePendingByEmail(email string) error
	DeleteExpiredPending(now time.Time) (int64, error)

	DiscountsByProfile(profileID uuid.UUID) ([]models.Discount, error)
	DiscountByID(id uuid.UUID) (*models.Discount, error)
	DiscountOwnedBy(id, profileID uuid.UUID) (*models.Discount, error)
	CreateDiscount(d *models.Discount) error
	SaveDiscount(d *models.Discount) error
	DeleteDiscount(d *models.Discount) error
}

// Mailer sends a single message. Send failures are surfaced to callers;
// no service retries on its own.
type Mailer interface {
	Send(toName, toEmail, subject, htmlContent string) error
}

// KV is a keyed store with per-key TTL, backed by Redis in production.
// Get returns ErrNotFound for missing or expired keys.
type KV interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
}
