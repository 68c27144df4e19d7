package migrations

import (
	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260115000008_create_job_applications_table", &CreateJobApplicationsTable{})
}

type CreateJobApplicationsTable struct{}

func (m *CreateJobApplicationsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.JobApplication{})
}

func (m *CreateJobApplicationsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("job_applications")
}
