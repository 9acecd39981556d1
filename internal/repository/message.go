package repository

import (
	"context"
	"time"

	"chirp/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines the interface for direct message data operations
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	Conversations(ctx context.Context, userID uint) ([]models.Conversation, error)
	HistoryAndMarkRead(ctx context.Context, userID, partnerID uint) ([]models.Message, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Conversations folds the user's messages into one entry per partner, newest
// conversation first, carrying the latest message and the count of messages
// the user has not read yet.
func (r *messageRepository) Conversations(ctx context.Context, userID uint) ([]models.Conversation, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&messages).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	var conversations []models.Conversation
	index := make(map[uint]int)
	for _, m := range messages {
		partnerID := m.SenderID
		if partnerID == userID {
			partnerID = m.RecipientID
		}
		i, seen := index[partnerID]
		if !seen {
			index[partnerID] = len(conversations)
			i = len(conversations)
			conversations = append(conversations, models.Conversation{
				PartnerID:          partnerID,
				LastMessageContent: m.Content,
				LastMessageTime:    m.CreatedAt.Format(time.RFC3339),
			})
		}
		if m.RecipientID == userID && !m.IsRead {
			conversations[i].UnreadCount++
		}
	}
	if len(conversations) == 0 {
		return []models.Conversation{}, nil
	}

	partnerIDs := make([]uint, 0, len(conversations))
	for _, c := range conversations {
		partnerIDs = append(partnerIDs, c.PartnerID)
	}
	var partners []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", partnerIDs).Find(&partners).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	names := make(map[uint]string, len(partners))
	for _, p := range partners {
		names[p.ID] = p.Username
	}
	for i := range conversations {
		conversations[i].PartnerUsername = names[conversations[i].PartnerID]
	}
	return conversations, nil
}

// HistoryAndMarkRead returns the full two-way history with a partner, oldest
// first, and marks the partner's messages to the user as read in the same
// transaction.
func (r *messageRepository) HistoryAndMarkRead(ctx context.Context, userID, partnerID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Preload("Sender").
			Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
				userID, partnerID, partnerID, userID).
			Order("created_at ASC, id ASC").
			Find(&messages).Error
		if err != nil {
			return err
		}
		return tx.Model(&models.Message{}).
			Where("sender_id = ? AND recipient_id = ? AND is_read = ?", partnerID, userID, false).
			Update("is_read", true).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

func (r *messageRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
