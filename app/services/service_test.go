package services

import (
	"strings"
	"testing"

	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/pkg/auth"
	"github.com/careerloft/careerloft/pkg/database"
	"github.com/careerloft/careerloft/pkg/event"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB points the global connection at a fresh in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Order{}, &models.Message{}, &models.Document{},
		&models.Lead{}, &models.AdminSettings{}, &models.WidgetLayout{},
		&models.JobApplication{},
	))

	database.DB = db
	t.Cleanup(func() {
		database.DB = nil
		event.Flush()
	})
	return db
}

// seedCatalog inserts a settings row with a known package and add-on list.
func seedCatalog(t *testing.T, db *gorm.DB) models.AdminSettings {
	t.Helper()

	settings := models.AdminSettings{ChatWidgetEnabled: true}
	settings.SetPackageCatalog([]models.Package{
		{ID: "starter", Name: "Starter Resume", Price: 199},
		{ID: "professional", Name: "Professional", Price: 299},
	})
	settings.SetAddOnCatalog([]models.AddOn{
		{ID: "cover_letter", Name: "Cover Letter", Price: 49},
		{ID: "linkedin", Name: "LinkedIn Optimisation", Price: 125},
	})
	require.NoError(t, db.Create(&settings).Error)
	return settings
}

// createUser inserts an account with a bcrypt-hashed password.
func createUser(t *testing.T, db *gorm.DB, username string, role models.Role) models.User {
	t.Helper()

	hash, err := auth.HashPassword("secret-password")
	require.NoError(t, err)

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: hash,
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}
