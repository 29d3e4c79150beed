// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account on the Inkwell blog.
// IsAdmin marks the single privileged account allowed to author posts;
// it replaces any hardcoded "user #1" convention.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"size:50;unique;not null" json:"email"`
	Username  string         `gorm:"size:50;unique;not null" json:"username"`
	Password  string         `gorm:"not null" json:"-"`
	Avatar    string         `gorm:"size:250" json:"avatar"`
	Bio       string         `gorm:"size:50;default:Tech enjoyer" json:"bio"`
	IsAdmin   bool           `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Posts     []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}
