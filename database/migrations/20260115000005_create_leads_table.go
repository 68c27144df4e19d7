package migrations

import (
	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260115000005_create_leads_table", &CreateLeadsTable{})
}

type CreateLeadsTable struct{}

func (m *CreateLeadsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Lead{})
}

func (m *CreateLeadsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("leads")
}
