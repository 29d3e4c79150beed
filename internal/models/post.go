package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a blog entry authored by the admin account.
// PublishedOn is the human-readable publish date shown on the post page;
// it is rewritten whenever the post is edited.
type Post struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null" json:"user_id"`
	Title       string         `gorm:"size:250;unique;not null" json:"title"`
	Subtitle    string         `gorm:"size:250;not null" json:"subtitle"`
	Body        string         `gorm:"type:text;not null" json:"body"`
	ImageURL    string         `gorm:"size:250" json:"image_url"`
	PublishedOn string         `gorm:"size:250;not null" json:"published_on"`
	User        User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
