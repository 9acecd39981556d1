package service

import (
	"context"
	"strings"

	"chirp/internal/models"
	"chirp/internal/observability"
	"chirp/internal/repository"
)

type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) *MessageService {
	return &MessageService{messageRepo: messageRepo, userRepo: userRepo}
}

// Conversations lists the viewer's message threads, most recently active
// first.
func (s *MessageService) Conversations(ctx context.Context, viewerID uint) ([]models.Conversation, error) {
	return s.messageRepo.Conversations(ctx, viewerID)
}

// History returns the full thread with the named partner, oldest first, and
// marks the partner's messages to the viewer as read.
func (s *MessageService) History(ctx context.Context, viewerID uint, partnerUsername string) ([]models.MessageView, error) {
	partner, err := s.userRepo.GetByUsername(ctx, partnerUsername)
	if err != nil {
		return nil, err
	}
	messages, err := s.messageRepo.HistoryAndMarkRead(ctx, viewerID, partner.ID)
	if err != nil {
		return nil, err
	}
	views := make([]models.MessageView, 0, len(messages))
	for i := range messages {
		views = append(views, models.NewMessageView(&messages[i], viewerID))
	}
	return views, nil
}

// Send delivers a direct message to the named recipient. The message is
// persisted unread; the recipient sees it on their next history fetch.
func (s *MessageService) Send(ctx context.Context, viewerID uint, recipientUsername, content string) (*models.MessageView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Message content is required")
	}
	recipient, err := s.userRepo.GetByUsername(ctx, recipientUsername)
	if err != nil {
		return nil, err
	}
	if recipient.ID == viewerID {
		return nil, models.NewValidationError("You cannot message yourself")
	}

	message := &models.Message{SenderID: viewerID, RecipientID: recipient.ID, Content: content}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	observability.MessagesSent.Inc()

	sender, err := s.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	message.Sender = *sender
	view := models.NewMessageView(message, viewerID)
	return &view, nil
}

// UnreadCount returns how many messages are waiting for the viewer.
func (s *MessageService) UnreadCount(ctx context.Context, viewerID uint) (int64, error) {
	return s.messageRepo.CountUnread(ctx, viewerID)
}
