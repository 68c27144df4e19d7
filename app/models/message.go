package models

import (
	"time"
)

// Message is one entry in an order thread or pre-order lead chat.
// Append-only: there is no edit or delete path.
//
// Exactly one of OrderID / LeadID is set. The source system reused the order
// id column for lead chats; here the two scopes get their own columns.
type Message struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	OrderID     *uint       `gorm:"index" json:"order_id"`
	LeadID      *uint       `gorm:"index" json:"lead_id"`
	SenderID    uint        `gorm:"index" json:"sender_id"` // 0 for anonymous lead chat
	RecipientID *uint       `json:"recipient_id"`
	Content     string      `gorm:"type:text;not null" json:"content"`
	IsRead      bool        `gorm:"not null;default:false" json:"is_read"`
	Type        MessageType `gorm:"size:20;not null;default:chat" json:"type"`
	CreatedAt   time.Time   `json:"created_at"`
}
