package models

import "time"

// Follow is a directed edge: Follower follows Followed.
// At most one edge per ordered pair; self-edges are rejected at the service
// layer rather than the schema.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follower_followed" json:"follower_id"`
	FollowedID uint      `gorm:"not null;uniqueIndex:idx_follower_followed;index" json:"followed_id"`
	Follower   User      `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followed   User      `gorm:"foreignKey:FollowedID" json:"followed,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// RelationshipView is one entry in a followers/following listing, annotated
// with whether the viewer (not the listed target) follows that user.
type RelationshipView struct {
	Username    string `json:"username"`
	UserID      uint   `json:"user_id"`
	IsFollowing bool   `json:"isFollowing"`
}
