package migrations

import (
	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260115000007_create_widget_layouts_table", &CreateWidgetLayoutsTable{})
}

type CreateWidgetLayoutsTable struct{}

func (m *CreateWidgetLayoutsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.WidgetLayout{})
}

func (m *CreateWidgetLayoutsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("widget_layouts")
}
