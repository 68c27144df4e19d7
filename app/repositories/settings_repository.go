package repositories

import (
	"errors"
	"time"

	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/pkg/cache"
	"github.com/careerloft/careerloft/pkg/crypt"
	"github.com/careerloft/careerloft/pkg/orm"
	"gorm.io/gorm"
)

const settingsCacheKey = "careerloft:admin_settings"

// SettingsRepository is the explicit accessor for the AdminSettings singleton
// (read + upsert, no module-level global). Gateway secrets are AES-GCM
// encrypted before they touch the database and decrypted on the way out.
// Reads go through Redis; the cache is dropped on every write.
type SettingsRepository struct{}

func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{}
}

// Get returns the singleton row, or a zero-value settings struct when no row
// has been written yet.
func (r *SettingsRepository) Get() (models.AdminSettings, error) {
	var settings models.AdminSettings
	if cache.Get(settingsCacheKey, &settings) {
		return settings, nil
	}

	err := orm.DB().Model(&models.AdminSettings{}).First(&settings)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.AdminSettings{}, nil
	}
	if err != nil {
		return models.AdminSettings{}, err
	}

	if settings.StripeSecretKey != "" {
		if plain, derr := crypt.Decrypt(settings.StripeSecretKey); derr == nil {
			settings.StripeSecretKey = plain
		}
	}
	if settings.PaypalSecretKey != "" {
		if plain, derr := crypt.Decrypt(settings.PaypalSecretKey); derr == nil {
			settings.PaypalSecretKey = plain
		}
	}

	cache.Set(settingsCacheKey, settings, 5*time.Minute)
	return settings, nil
}

// Upsert creates the row on first write, updates it afterwards.
func (r *SettingsRepository) Upsert(settings *models.AdminSettings) error {
	stored := *settings

	if stored.StripeSecretKey != "" {
		enc, err := crypt.Encrypt(stored.StripeSecretKey)
		if err != nil {
			return err
		}
		stored.StripeSecretKey = enc
	}
	if stored.PaypalSecretKey != "" {
		enc, err := crypt.Encrypt(stored.PaypalSecretKey)
		if err != nil {
			return err
		}
		stored.PaypalSecretKey = enc
	}

	var existing models.AdminSettings
	err := orm.DB().Model(&models.AdminSettings{}).First(&existing)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		err = orm.DB().Create(&stored)
	case err == nil:
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
		err = orm.DB().Save(&stored)
	}
	if err != nil {
		return err
	}

	settings.ID = stored.ID
	cache.Del(settingsCacheKey)
	return nil
}
