package configs

import (
	"os"
	"strings"

	"github.com/Fenet-Ab/fen-one-shop/entity"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var defaultCategories = []string{
	"Electronics",
	"Clothing",
	"Accessories",
	"Home Decor",
	"Jewelry",
	"Watches",
	"Bags & Luggage",
	"Shoes",
	"Books",
	"Sports & Outdoors",
}

// SeedAdmin creates the first administrator from ADMIN_EMAIL / ADMIN_PASSWORD.
func SeedAdmin(db *gorm.DB, log *zap.Logger) error {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	pass := os.Getenv("ADMIN_PASSWORD")
	if email == "" || pass == "" {
		log.Info("skip seeding admin: ADMIN_EMAIL/ADMIN_PASSWORD not set")
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Debug("admin already exists", zap.String("email", email))
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Name:     "Admin",
		Email:    email,
		Password: string(hash),
		Role:     entity.RoleAdmin,
	}
	return db.Create(&admin).Error
}

// SeedCategories makes sure the default category list exists.
func SeedCategories(db *gorm.DB, log *zap.Logger) error {
	for _, name := range defaultCategories {
		if err := db.FirstOrCreate(&entity.Category{}, entity.Category{Name: name}).Error; err != nil {
			return err
		}
	}
	log.Info("categories seeded", zap.Int("count", len(defaultCategories)))
	return nil
}
