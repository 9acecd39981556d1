package repository

import (
	"context"

	"chirp/internal/models"

	"gorm.io/gorm"
)

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	Toggle(ctx context.Context, userID, postID uint, kind models.ReactionKind) (bool, int64, error)
	Count(ctx context.Context, postID uint, kind models.ReactionKind) (int64, error)
	CountByUser(ctx context.Context, userID uint, kind models.ReactionKind) (int64, error)
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new reaction repository
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// Toggle flips the (user, post, kind) reaction inside one transaction and
// returns whether the reaction is now active plus the fresh count for that
// kind. The delete-first approach makes the toggle idempotent under retries.
func (r *reactionRepository) Toggle(ctx context.Context, userID, postID uint, kind models.ReactionKind) (bool, int64, error) {
	var active bool
	var count int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ? AND kind = ?", userID, postID, string(kind)).
			Delete(&models.Reaction{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			reaction := models.Reaction{UserID: userID, PostID: postID, Kind: kind}
			if err := tx.Create(&reaction).Error; err != nil {
				return err
			}
			active = true
		}
		return tx.Model(&models.Reaction{}).
			Where("post_id = ? AND kind = ?", postID, string(kind)).
			Count(&count).Error
	})
	if err != nil {
		return false, 0, models.NewInternalError(err)
	}
	return active, count, nil
}

func (r *reactionRepository) Count(ctx context.Context, postID uint, kind models.ReactionKind) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Where("post_id = ? AND kind = ?", postID, string(kind)).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *reactionRepository) CountByUser(ctx context.Context, userID uint, kind models.ReactionKind) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Where("user_id = ? AND kind = ?", userID, string(kind)).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
