package models

import "gorm.io/gorm"

// Lead is a prospect captured pre-purchase via the landing-page chat widget
// or the resume scanner.
type Lead struct {
	gorm.Model
	Name             string     `gorm:"size:255" json:"name"`
	Email            string     `gorm:"size:255;index" json:"email"`
	Phone            string     `gorm:"size:50" json:"phone"`
	Source           string     `gorm:"size:100" json:"source"` // "chat_widget" | "scanner" | "signup"
	Status           LeadStatus `gorm:"size:20;not null;default:new" json:"status"`
	AssignedWriterID *uint      `gorm:"index" json:"assigned_writer_id"`
	ATSScore         int        `json:"ats_score"`
}
