package repository

import (
	"context"
	"errors"

	"chirp/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreateWithNotifications(ctx context.Context, post *models.Post, build func(postID uint) []*models.Notification) error
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error)
	Feed(ctx context.Context, viewerID uint, limit, offset int) ([]models.Post, error)
	ByUser(ctx context.Context, userID uint, viewerID uint) ([]models.Post, error)
	Delete(ctx context.Context, postID uint) error
	Search(ctx context.Context, query string, viewerID uint, limit int) ([]models.Post, error)
	Bookmarked(ctx context.Context, viewerID uint) ([]models.Post, error)
	ReactedBy(ctx context.Context, userID uint, kind models.ReactionKind, viewerID uint) ([]models.Post, error)
	CommentedBy(ctx context.Context, userID uint, viewerID uint) ([]models.Post, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// postDetailsSelect annotates each post row with reaction and comment counts
// plus the viewer's own reaction state, all computed in a single query.
// Placeholder args: viewerID three times (is_liked, is_retweeted, is_bookmarked).
const postDetailsSelect = `posts.*,
(SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.kind = 'LIKE') AS like_count,
(SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.kind = 'RETWEET') AS retweet_count,
(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count,
EXISTS(SELECT 1 FROM reactions WHERE reactions.post_id = posts.id AND reactions.user_id = ? AND reactions.kind = 'LIKE') AS is_liked,
EXISTS(SELECT 1 FROM reactions WHERE reactions.post_id = posts.id AND reactions.user_id = ? AND reactions.kind = 'RETWEET') AS is_retweeted,
EXISTS(SELECT 1 FROM reactions WHERE reactions.post_id = posts.id AND reactions.user_id = ? AND reactions.kind = 'BOOKMARK') AS is_bookmarked`

func (r *postRepository) withDetails(ctx context.Context, viewerID uint) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select(postDetailsSelect, viewerID, viewerID, viewerID).
		Preload("User")
}

// CreateWithNotifications inserts a post and its fan-out notifications in one
// transaction. The build callback receives the assigned post ID so notification
// rows can reference it; either everything commits or nothing does.
func (r *postRepository) CreateWithNotifications(ctx context.Context, post *models.Post, build func(postID uint) []*models.Notification) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		notifications := build(post.ID)
		if len(notifications) == 0 {
			return nil
		}
		return tx.Create(notifications).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	var post models.Post
	err := r.withDetails(ctx, viewerID).
		Where("posts.id = ?", id).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post not found")
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// Feed returns the viewer's own posts plus posts from users they follow,
// newest first. The id tiebreaker keeps pagination stable for posts created
// within the same timestamp.
func (r *postRepository) Feed(ctx context.Context, viewerID uint, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := r.withDetails(ctx, viewerID).
		Where("posts.user_id = ? OR posts.user_id IN (SELECT followed_id FROM follows WHERE follower_id = ?)", viewerID, viewerID).
		Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ByUser(ctx context.Context, userID uint, viewerID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.withDetails(ctx, viewerID).
		Where("posts.user_id = ?", userID).
		Order("posts.created_at DESC, posts.id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Delete removes a post along with its reactions and comments in one
// transaction. Notifications referencing the post are intentionally kept.
func (r *postRepository) Delete(ctx context.Context, postID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, postID).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Search(ctx context.Context, query string, viewerID uint, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.withDetails(ctx, viewerID).
		Where("LOWER(posts.content) LIKE ?", "%"+query+"%").
		Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Bookmarked returns posts the viewer has bookmarked, most recently
// bookmarked first.
func (r *postRepository) Bookmarked(ctx context.Context, viewerID uint) ([]models.Post, error) {
	return r.ReactedBy(ctx, viewerID, models.ReactionBookmark, viewerID)
}

// ReactedBy returns posts a user has reacted to with the given kind, ordered
// by reaction recency. Used for the liked, retweeted and bookmarked tabs.
func (r *postRepository) ReactedBy(ctx context.Context, userID uint, kind models.ReactionKind, viewerID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.withDetails(ctx, viewerID).
		Joins("JOIN reactions r ON r.post_id = posts.id AND r.user_id = ? AND r.kind = ?", userID, string(kind)).
		Order("r.created_at DESC, posts.id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// CommentedBy returns the distinct posts a user has commented on, ordered by
// the user's latest comment on each. Post IDs are resolved first so the
// annotated fetch stays a plain id lookup.
func (r *postRepository) CommentedBy(ctx context.Context, userID uint, viewerID uint) ([]models.Post, error) {
	var postIDs []uint
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("user_id = ?", userID).
		Group("post_id").
		Order("MAX(created_at) DESC").
		Pluck("post_id", &postIDs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(postIDs) == 0 {
		return []models.Post{}, nil
	}

	var posts []models.Post
	err = r.withDetails(ctx, viewerID).
		Where("posts.id IN ?", postIDs).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	byID := make(map[uint]models.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	ordered := make([]models.Post, 0, len(posts))
	for _, id := range postIDs {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

func (r *postRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
