package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

// Widget is one dashboard panel descriptor. Positioning is free-form; the
// client is trusted to send a sane layout, so no grid or collision rules.
type Widget struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	W       int    `json:"w"`
	H       int    `json:"h"`
	Visible bool   `json:"visible"`
}

// WidgetLayout is a user's personalised dashboard arrangement, one row per user.
type WidgetLayout struct {
	gorm.Model
	UserID uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	Layout string `gorm:"type:text" json:"-"` // JSON []Widget
}

// Widgets decodes the stored layout.
func (l *WidgetLayout) Widgets() []Widget {
	var ws []Widget
	if l.Layout != "" {
		_ = json.Unmarshal([]byte(l.Layout), &ws)
	}
	return ws
}

// SetWidgets encodes ws for storage.
func (l *WidgetLayout) SetWidgets(ws []Widget) {
	raw, _ := json.Marshal(ws)
	l.Layout = string(raw)
}
