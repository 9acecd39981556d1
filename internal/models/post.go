package models

import "time"

// Post is a single chirp authored by a user.
//
// The count and viewer-state fields are filled from SELECT aliases by the
// repository (see applyPostDetails); they are read-only and never migrated.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	LikeCount    int64 `gorm:"->;-:migration" json:"likes"`
	RetweetCount int64 `gorm:"->;-:migration" json:"retweets"`
	CommentCount int64 `gorm:"->;-:migration" json:"comments"`
	IsLiked      bool  `gorm:"->;-:migration" json:"isLiked"`
	IsRetweeted  bool  `gorm:"->;-:migration" json:"isRetweeted"`
	IsBookmarked bool  `gorm:"->;-:migration" json:"isBookmarked"`

	// CanDelete is true when the requesting user authored the post.
	CanDelete bool `gorm:"-" json:"canDelete"`
}

// PostView is the flat JSON shape the timeline client renders.
type PostView struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	Handle       string `json:"handle"`
	Content      string `json:"content"`
	Time         string `json:"time"`
	Likes        int64  `json:"likes"`
	Retweets     int64  `json:"retweets"`
	Comments     int64  `json:"comments"`
	IsLiked      bool   `json:"isLiked"`
	IsRetweeted  bool   `json:"isRetweeted"`
	IsBookmarked bool   `json:"isBookmarked"`
	ProfileImage string `json:"profile_image"`
	CanDelete    bool   `json:"canDelete"`
}

// NewPostView flattens an annotated post for the API response. viewerID
// determines the canDelete flag.
func NewPostView(p *Post, viewerID uint) PostView {
	return PostView{
		ID:           p.ID,
		Username:     p.User.Username,
		Handle:       p.User.Handle(),
		Content:      p.Content,
		Time:         p.CreatedAt.Format("Jan 02"),
		Likes:        p.LikeCount,
		Retweets:     p.RetweetCount,
		Comments:     p.CommentCount,
		IsLiked:      p.IsLiked,
		IsRetweeted:  p.IsRetweeted,
		IsBookmarked: p.IsBookmarked,
		ProfileImage: p.User.AvatarPath(),
		CanDelete:    p.UserID == viewerID,
	}
}

// NewPostViews flattens a slice of annotated posts.
func NewPostViews(posts []Post, viewerID uint) []PostView {
	views := make([]PostView, 0, len(posts))
	for i := range posts {
		views = append(views, NewPostView(&posts[i], viewerID))
	}
	return views
}
