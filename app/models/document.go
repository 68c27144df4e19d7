package models

import "time"

// Document is an uploaded file attached to an order (draft, final resume,
// source material). Bytes live on a storage disk; the row carries metadata.
type Document struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	UploadedBy uint      `gorm:"not null;index" json:"uploaded_by"`
	FileName   string    `gorm:"size:512;not null" json:"file_name"`
	FileURL    string    `gorm:"size:2048;not null" json:"file_url"`
	FileType   string    `gorm:"size:100" json:"file_type"`
	FileSize   int64     `json:"file_size"`
	Version    int       `gorm:"not null;default:1" json:"version"`
	CreatedAt  time.Time `json:"created_at"`
}
