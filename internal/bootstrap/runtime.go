// Package bootstrap wires process-level dependencies before the server starts.
package bootstrap

import (
	"errors"
	"fmt"
	"strings"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// InitRuntime connects to the database and Redis and ensures the admin
// account exists.
func InitRuntime(cfg *config.Config) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// May leave a nil client if Redis is unreachable; sessions then lose
	// revocation but stay otherwise functional.
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if err := EnsureAdmin(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap admin account: %w", err)
	}

	return db, r, nil
}

// EnsureAdmin creates or repairs the single admin account identified by
// ADMIN_EMAIL. The admin is an ordinary user with the IsAdmin role set, not
// a magic ID.
func EnsureAdmin(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}

	email := strings.TrimSpace(strings.ToLower(cfg.AdminEmail))
	if email == "" {
		return nil
	}

	username := strings.TrimSpace(cfg.AdminUsername)
	if username == "" {
		username = "admin"
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var admin models.User
		findErr := tx.Where("email = ?", email).First(&admin).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			password := cfg.AdminPassword
			if password == "" {
				return fmt.Errorf("ADMIN_PASSWORD must be set to create the admin account")
			}
			hashed, err := service.HashPassword(password, bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash admin password: %w", err)
			}
			admin = models.User{
				Email:    email,
				Username: username,
				Password: hashed,
				IsAdmin:  true,
			}
			return tx.Create(&admin).Error
		case findErr != nil:
			return findErr
		case !admin.IsAdmin:
			// The account exists but lost its role; restore it.
			return tx.Model(&models.User{}).Where("id = ?", admin.ID).Update("is_admin", true).Error
		default:
			return nil
		}
	})
}
