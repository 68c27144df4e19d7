package models

import (
	"time"

	"gorm.io/gorm"
)

// JobApplication is one entry in a client's personal job tracker.
type JobApplication struct {
	gorm.Model
	UserID    uint              `gorm:"not null;index" json:"user_id"`
	Company   string            `gorm:"size:255;not null" json:"company"`
	Position  string            `gorm:"size:255;not null" json:"position"`
	JobURL    string            `gorm:"size:2048" json:"job_url"`
	Status    ApplicationStatus `gorm:"size:20;not null;default:saved" json:"status"`
	Notes     string            `gorm:"type:text" json:"notes"`
	AppliedAt *time.Time        `json:"applied_at"`
}
