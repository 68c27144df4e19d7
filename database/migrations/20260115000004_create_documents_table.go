package migrations

import (
	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260115000004_create_documents_table", &CreateDocumentsTable{})
}

type CreateDocumentsTable struct{}

func (m *CreateDocumentsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Document{})
}

func (m *CreateDocumentsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("documents")
}
