package models

import "gorm.io/gorm"

// User is an account in any of the three marketplace roles.
type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	FullName string `gorm:"size:255" json:"full_name"`
	Role     Role   `gorm:"size:20;not null;default:client" json:"role"`
}
