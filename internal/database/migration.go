package database

import (
	"fmt"

	"user-account-service/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models. The
// user_roles join table is backed by the explicit UserRole model so
// role assignments can be replaced row by row.
func AutoMigrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.User{}, "Roles", &models.UserRole{}); err != nil {
		return fmt.Errorf("setup join table: %w", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
