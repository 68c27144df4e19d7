package migrations

import (
	"github.com/careerloft/careerloft/pkg/migration"
	"github.com/careerloft/careerloft/pkg/queue"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260115000009_create_failed_jobs_table", &CreateFailedJobsTable{})
}

type CreateFailedJobsTable struct{}

func (m *CreateFailedJobsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&queue.FailedJobRecord{})
}

func (m *CreateFailedJobsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("careerloft_failed_jobs")
}
