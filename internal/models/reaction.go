package models

import "time"

// ReactionKind is the polarity of a reaction.
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// Valid reports whether k is one of the two supported kinds.
func (k ReactionKind) Valid() bool {
	return k == ReactionLike || k == ReactionDislike
}

// Reaction records a single user's like or dislike on a single comment.
// The combination of UserID and CommentID must be unique; the unique index
// is the backstop for the application-level one-reaction-per-pair check.
type Reaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_comment" json:"user_id"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_user_comment" json:"comment_id"`
	Liked     bool      `gorm:"not null;default:false" json:"liked"`
	Disliked  bool      `gorm:"not null;default:false" json:"disliked"`
	CreatedAt time.Time `json:"created_at"`
}

// Kind returns the reaction's polarity.
func (r Reaction) Kind() ReactionKind {
	if r.Liked {
		return ReactionLike
	}
	return ReactionDislike
}
