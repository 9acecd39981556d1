package models

import "time"

// Message is a direct message between two users. Messages have no edit or
// delete lifecycle; is_read flips unread -> read exactly once.
type Message struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SenderID    uint      `gorm:"not null;index" json:"sender_id"`
	RecipientID uint      `gorm:"not null;index" json:"recipient_id"`
	Sender      User      `gorm:"foreignKey:SenderID" json:"-"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	IsRead      bool      `gorm:"default:false" json:"is_read"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

// MessageView is one message as rendered in a conversation, relative to the
// requesting user.
type MessageView struct {
	ID             uint   `json:"id"`
	Content        string `json:"content"`
	Timestamp      string `json:"timestamp"`
	IsRead         bool   `json:"is_read"`
	IsOutgoing     bool   `json:"is_outgoing"`
	SenderUsername string `json:"sender_username"`
}

// NewMessageView flattens a message for the API response. viewerID determines
// the is_outgoing flag.
func NewMessageView(m *Message, viewerID uint) MessageView {
	return MessageView{
		ID:             m.ID,
		Content:        m.Content,
		Timestamp:      m.CreatedAt.Format(time.RFC3339),
		IsRead:         m.IsRead,
		IsOutgoing:     m.SenderID == viewerID,
		SenderUsername: m.Sender.Username,
	}
}

// Conversation summarizes a message thread with one partner.
type Conversation struct {
	PartnerUsername    string `json:"partner_username"`
	PartnerID          uint   `json:"partner_id"`
	LastMessageContent string `json:"last_message_content"`
	LastMessageTime    string `json:"last_message_time"`
	UnreadCount        int64  `json:"unread_count"`
}
