package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/naculis/naculis_game/models"
	"github.com/naculis/naculis_game/services"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements services.Store on top of the shared *gorm.DB.
type GormStore struct {
	db *gorm.DB
}

func NewStore() *GormStore {
	return &GormStore{db: DB}
}

func (s *GormStore) Transact(fn func(tx services.Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return services.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: duplicate key", services.ErrConflict)
	default:
		return err
	}
}

func (s *GormStore) UserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.Where("id = ?", id).First(&user).Error
	return &user, mapErr(err)
}

func (s *GormStore) UserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	return &user, mapErr(err)
}

func (s *GormStore) UserByEmailAndUsername(email, username string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ? AND username = ?", email, username).First(&user).Error
	return &user, mapErr(err)
}

func (s *GormStore) UserExists(email, username string) (bool, error) {
	var count int64
	err := s.db.Model(&models.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	return count > 0, err
}

func (s *GormStore) CreateUser(u *models.User) error {
	return mapErr(s.db.Create(u).Error)
}

func (s *GormStore) SaveUser(u *models.User) error {
	return mapErr(s.db.Save(u).Error)
}

// DeleteUser removes the user plus its profile and discounts. Migration
// runs with FK constraints disabled, so the cascade is done by hand.
func (s *GormStore) DeleteUser(u *models.User) error {
	return mapErr(s.db.Transaction(func(tx *gorm.DB) error {
		var profile models.UserProfile
		err := tx.Where("user_id = ?", u.ID).First(&profile).Error
		if err == nil {
			if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Discount{}).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.UserProfile{}).
				Where("referred_by_id = ?", profile.ID).
				Update("referred_by_id", nil).Error; err != nil {
				return err
			}
			if err := tx.Delete(&profile).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Delete(u).Error
	}))
}

func (s *GormStore) ProfileByUserID(userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.Where("user_id = ?", userID).First(&profile).Error
	return &profile, mapErr(err)
}

func (s *GormStore) ProfileByID(id uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.Where("id = ?", id).First(&profile).Error
	return &profile, mapErr(err)
}

func (s *GormStore) ProfileByReferralCode(code string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.Where("referral_code = ?", code).First(&profile).Error
	return &profile, mapErr(err)
}

func (s *GormStore) ReferralCodeExists(code string) (bool, error) {
	var count int64
	err := s.db.Model(&models.UserProfile{}).Where("referral_code = ?", code).Count(&count).Error
	return count > 0, err
}

func (s *GormStore) CreateProfile(p *models.UserProfile) error {
	return mapErr(s.db.Create(p).Error)
}

func (s *GormStore) SaveProfile(p *models.UserProfile) error {
	return mapErr(s.db.Save(p).Error)
}

func (s *GormStore) PendingByEmail(email string) (*models.PendingRegistration, error) {
	var pending models.PendingRegistration
	// FOR UPDATE so two concurrent verify calls serialize on the row.
	err := s.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("email = ?", email).First(&pending).Error
	return &pending, mapErr(err)
}

func (s *GormStore) CreatePending(p *models.PendingRegistration) error {
	return mapErr(s.db.Create(p).Error)
}

func (s *GormStore) SavePending(p *models.PendingRegistration) error {
	return mapErr(s.db.Save(p).Error)
}

func (s *GormStore) DeletePendingByEmail(email string) error {
	return mapErr(s.db.Where("email = ?", email).Delete(&models.PendingRegistration{}).Error)
}

func (s *GormStore) DeleteExpiredPending(now time.Time) (int64, error) {
	res := s.db.Where("expires_at < ?", now).Delete(&models.PendingRegistration{})
	return res.RowsAffected, res.Error
}

func (s *GormStore) DiscountsByProfile(profileID uuid.UUID) ([]models.Discount, error) {
	var discounts []models.Discount
	err := s.db.Where("profile_id = ?", profileID).Order("granted_at desc").Find(&discounts).Error
	return discounts, err
}

func (s *GormStore) DiscountByID(id uuid.UUID) (*models.Discount, error) {
	var discount models.Discount
	err := s.db.Where("id = ?", id).First(&discount).Error
	return &discount, mapErr(err)
}

func (s *GormStore) DiscountOwnedBy(id, profileID uuid.UUID) (*models.Discount, error) {
	var discount models.Discount
	err := s.db.Where("id = ? AND profile_id = ?", id, profileID).First(&discount).Error
	return &discount, mapErr(err)
}

func (s *GormStore) CreateDiscount(d *models.Discount) error {
	return mapErr(s.db.Create(d).Error)
}

func (s *GormStore) SaveDiscount(d *models.Discount) error {
	return mapErr(s.db.Save(d).Error)
}

func (s *GormStore) DeleteDiscount(d *models.Discount) error {
	return mapErr(s.db.Delete(d).Error)
}

// RedisKV implements services.KV.
type RedisKV struct {
	Client *redis.Client
}

func NewKV() *RedisKV {
	return &RedisKV{Client: Redis}
}

func (kv *RedisKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return kv.Client.Set(ctx, key, value, ttl).Err()
}

func (kv *RedisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := kv.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", services.ErrNotFound
	}
	return val, err
}

func (kv *RedisKV) Del(ctx context.Context, key string) error {
	return kv.Client.Del(ctx, key).Err()
}
