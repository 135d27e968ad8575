package database

import (
	"fmt"
	"log"
	"strings"

	config "github.com/naculis/naculis_game/configs"
	"github.com/naculis/naculis_game/models"
	"github.com/naculis/naculis_game/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.PendingRegistration{},
		&models.Discount{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

func SeedAdmin() {
	adminEmail := strings.ToLower(config.Config("ADMIN_EMAIL"))
	adminUsername := strings.ToLower(config.Config("ADMIN_USERNAME"))
	adminPassword := config.Config("ADMIN_PASSWORD")

	var count int64
	err := DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	err = DB.Transaction(func(tx *gorm.DB) error {
		adminUser := models.User{
			Email:    adminEmail,
			Username: adminUsername,
			Password: string(hashedPassword),
			Role:     models.RoleAdmin,
		}
		if err := tx.Create(&adminUser).Error; err != nil {
			return err
		}

		code, err := utils.GenerateUniqueReferralCode(func(c string) (bool, error) {
			var n int64
			if err := tx.Model(&models.UserProfile{}).Where("referral_code = ?", c).Count(&n).Error; err != nil {
				return false, err
			}
			return n > 0, nil
		})
		if err != nil {
			return err
		}

		profile := models.UserProfile{
			UserID:       adminUser.ID,
			ReferralCode: code,
			ReferralLink: utils.ReferralLink(code),
			Hearts:       5,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	log.Println("✅ Admin user seeded successfully")
}
