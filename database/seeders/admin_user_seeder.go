package seeders

import (
	"errors"

	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/config"
	"github.com/careerloft/careerloft/pkg/auth"
	"gorm.io/gorm"
)

func init() {
	Register(&AdminUserSeeder{})
}

// AdminUserSeeder creates the first admin account. Credentials come from
// ADMIN_USERNAME / ADMIN_PASSWORD; the defaults are for development only.
type AdminUserSeeder struct{}

func (s *AdminUserSeeder) Name() string { return "admin_user" }

func (s *AdminUserSeeder) Run(db *gorm.DB) error {
	username := config.Get("ADMIN_USERNAME", "admin")

	var existing models.User
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(config.Get("ADMIN_PASSWORD", "changeme123"))
	if err != nil {
		return err
	}

	return db.Create(&models.User{
		Username: username,
		Email:    config.Get("ADMIN_EMAIL", "admin@careerloft.app"),
		Password: hash,
		FullName: "Site Admin",
		Role:     models.RoleAdmin,
	}).Error
}
