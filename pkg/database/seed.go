package database

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rentmoment/rental-api/config"
	"github.com/rentmoment/rental-api/internal/constants"
	"github.com/rentmoment/rental-api/internal/model"
)

// Seed creates initial data for the database
func Seed(db *gorm.DB, cfg config.SeedConfig) error {
	return SeedAdmin(db, cfg)
}

// SeedAdmin creates the default admin user if it does not exist yet.
func SeedAdmin(db *gorm.DB, cfg config.SeedConfig) error {
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if email == "" || cfg.AdminPassword == "" {
		return nil
	}

	var existingUser model.User
	result := db.Where("email = ?", email).First(&existingUser)

	if result.Error == nil {
		return nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := model.User{
		Name:         cfg.AdminName,
		Email:        email,
		Password:     string(hashedPassword),
		Role:         constants.RoleAdmin,
		IsActive:     true,
		TokenVersion: 1,
	}

	return db.Create(&user).Error
}
