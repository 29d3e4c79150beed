package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a reader's comment on a post. The author's display name and
// avatar come from the joined User row rather than a snapshot taken at
// creation time, so profile edits are reflected on old comments.
//
// Likes and Dislikes are aggregate counters that must always equal the
// number of reaction rows of each kind referencing this comment.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	PostID    uint           `gorm:"not null" json:"post_id"`
	UserID    uint           `gorm:"not null" json:"user_id"`
	Body      string         `gorm:"type:text;not null" json:"body"`
	Likes     int            `gorm:"not null;default:0" json:"likes"`
	Dislikes  int            `gorm:"not null;default:0" json:"dislikes"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	Post      Post           `gorm:"foreignKey:PostID" json:"post,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
