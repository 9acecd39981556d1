package models

import "time"

// Comment is a reply attached to a post.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentView is the flat JSON shape the client renders under a post.
type CommentView struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Handle    string `json:"handle"`
	Content   string `json:"content"`
	Time      string `json:"time"`
	CanDelete bool   `json:"canDelete"`
}

// NewCommentView flattens a comment for the API response.
func NewCommentView(c *Comment, viewerID uint) CommentView {
	return CommentView{
		ID:        c.ID,
		Username:  c.User.Username,
		Handle:    c.User.Handle(),
		Content:   c.Content,
		Time:      c.CreatedAt.Format("Jan 02, 2006 at 3:04 PM"),
		CanDelete: c.UserID == viewerID,
	}
}
