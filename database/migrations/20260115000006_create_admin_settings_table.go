package migrations

import (
	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260115000006_create_admin_settings_table", &CreateAdminSettingsTable{})
}

type CreateAdminSettingsTable struct{}

func (m *CreateAdminSettingsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.AdminSettings{})
}

func (m *CreateAdminSettingsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("admin_settings")
}
