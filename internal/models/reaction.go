package models

import "time"

// ReactionKind is the closed set of reaction types a user can place on a post.
type ReactionKind string

const (
	// ReactionLike marks a post as liked.
	ReactionLike ReactionKind = "LIKE"
	// ReactionRetweet re-shares a post.
	ReactionRetweet ReactionKind = "RETWEET"
	// ReactionBookmark saves a post to the user's bookmarks.
	ReactionBookmark ReactionKind = "BOOKMARK"
)

// Valid reports whether k is one of the known reaction kinds.
func (k ReactionKind) Valid() bool {
	switch k {
	case ReactionLike, ReactionRetweet, ReactionBookmark:
		return true
	}
	return false
}

// Reaction ties one user to one post with a kind tag.
// At most one reaction of a given kind per (user, post) pair.
type Reaction struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	UserID    uint         `gorm:"not null;uniqueIndex:idx_user_post_kind" json:"user_id"`
	PostID    uint         `gorm:"not null;uniqueIndex:idx_user_post_kind;index" json:"post_id"`
	Kind      ReactionKind `gorm:"size:20;not null;uniqueIndex:idx_user_post_kind" json:"kind"`
	CreatedAt time.Time    `json:"created_at"`
}
