package models

import "time"

// NotificationKind distinguishes the two classes produced by post creation.
type NotificationKind string

const (
	// NotificationMention is sent to a user whose handle appears in a post.
	NotificationMention NotificationKind = "mention"
	// NotificationNewPost is sent to followers of the author.
	NotificationNewPost NotificationKind = "new_post"
)

// Notification records that an actor did something relevant to a user.
//
// PostID is a plain indexed column, not a foreign key: notifications are never
// deleted by the application and must outlive the post that triggered them.
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;index" json:"user_id"`
	ActorID   uint             `gorm:"not null" json:"actor_id"`
	Actor     User             `gorm:"foreignKey:ActorID" json:"-"`
	PostID    uint             `gorm:"index" json:"post_id"`
	Kind      NotificationKind `gorm:"size:50;default:'mention'" json:"type"`
	IsRead    bool             `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time        `gorm:"index" json:"timestamp"`
}

// NotificationView is the JSON shape returned by the notifications feed.
type NotificationView struct {
	ID            uint             `json:"id"`
	PostID        uint             `json:"post_id"`
	ActorID       uint             `json:"actor_id"`
	ActorUsername string           `json:"actor_username"`
	Kind          NotificationKind `json:"type"`
	IsRead        bool             `json:"is_read"`
	Timestamp     string           `json:"timestamp"`
}

// NewNotificationView flattens a notification with its preloaded actor.
func NewNotificationView(n *Notification) NotificationView {
	return NotificationView{
		ID:            n.ID,
		PostID:        n.PostID,
		ActorID:       n.ActorID,
		ActorUsername: n.Actor.Username,
		Kind:          n.Kind,
		IsRead:        n.IsRead,
		Timestamp:     n.CreatedAt.Format(time.RFC3339),
	}
}
