package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/careerloft/careerloft/pkg/logger"
	"gorm.io/gorm"
)

// FailedJobRecord is the database row for an exhausted job, kept so an
// operator can inspect and replay it.
type FailedJobRecord struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"`
	JobType  string    `gorm:"size:255;not null;index"`
	Payload  string    `gorm:"type:text;not null"`
	Error    string    `gorm:"type:text"`
	Attempts int       `gorm:"not null;default:0"`
	FailedAt time.Time `gorm:"autoCreateTime"`
}

func (FailedJobRecord) TableName() string { return "careerloft_failed_jobs" }

var failedJobDB *gorm.DB

// UseDB turns on database persistence for failures. Without it only the
// in-memory list is kept.
func UseDB(db *gorm.DB) {
	failedJobDB = db
	db.AutoMigrate(&FailedJobRecord{}) //nolint:errcheck
}

func recordFailure(job Job, typeName string, lastErr error, attempts int) {
	mu.Lock()
	failed = append(failed, FailedJob{
		Job: job, Err: lastErr, FailedAt: time.Now(), Attempts: attempts,
	})
	mu.Unlock()

	if failedJobDB == nil {
		return
	}

	payload, err := json.Marshal(job)
	if err != nil {
		payload = []byte(fmt.Sprintf(`{"marshal_error": %q}`, err.Error()))
	}
	row := FailedJobRecord{
		JobType:  typeName,
		Payload:  string(payload),
		Error:    lastErr.Error(),
		Attempts: attempts,
		FailedAt: time.Now(),
	}
	if err := failedJobDB.Create(&row).Error; err != nil {
		// The in-memory list still has the entry.
		logger.Error("queue: persist failed job", "type", typeName, "error", err)
	}
}
