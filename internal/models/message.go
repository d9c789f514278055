package models

import (
	"strings"

	"gorm.io/gorm"
)

// Message types accepted by the relay.
const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
	MessageTypeFile  = "file"
)

// ChatMessage represents a saved chat message in the PostgreSQL database.
// The embedded gorm.Model provides ID, CreatedAt, UpdatedAt, and DeletedAt
// fields, which serve as the message ID and timestamps.
type ChatMessage struct {
	gorm.Model

	// ChatID identifies the two-party conversation the message belongs to.
	// Both directions of a conversation share the same ChatID (see ChatIDFor).
	ChatID string `gorm:"type:text;not null;index:idx_chat_msg" json:"chatId"`
	// SenderID is the ID of the user who sent the message.
	SenderID string `gorm:"type:text;not null;index:idx_chat_msg" json:"senderId"`
	// ReceiverID is the ID of the user the message is addressed to.
	ReceiverID string `gorm:"type:text;not null;index" json:"receiverId"`
	// Content is the main content of the message (text, or a file reference).
	Content string `gorm:"type:text;not null" json:"content"`
	// Type is one of "text", "image" or "file".
	Type string `gorm:"type:text;not null;default:text" json:"type"`
	// IsRead is set once the receiver has opened the conversation.
	IsRead bool `gorm:"default:false" json:"isRead"`
}

// ChatIDFor derives the conversation identifier for a pair of users. The
// pair is unordered: ChatIDFor(a, b) == ChatIDFor(b, a), so whoever starts
// the conversation, both sides read and write the same history.
func ChatIDFor(a, b string) string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return a + ":" + b
}

// ValidMessageType reports whether t is one of the recognized message types.
func ValidMessageType(t string) bool {
	switch t {
	case MessageTypeText, MessageTypeImage, MessageTypeFile:
		return true
	}
	return false
}
