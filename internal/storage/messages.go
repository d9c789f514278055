package storage

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"mentorhub/backend/internal/models"
)

// SaveMessage stores a chat message in PostgreSQL. GORM fills in the ID and
// CreatedAt on the passed struct, which the relay then broadcasts.
func (s *Service) SaveMessage(msg *models.ChatMessage) error {
	if err := s.DB.Create(msg).Error; err != nil {
		log.Printf("ERROR: Failed to save message for chat %s: %v", msg.ChatID, err)
		return err
	}
	return nil
}

// GetChatHistory returns a conversation's messages oldest first. An unknown
// chat yields an empty list, not an error.
func (s *Service) GetChatHistory(chatID string) ([]models.ChatMessage, error) {
	var history []models.ChatMessage
	err := s.DB.Where("chat_id = ?", chatID).Order("created_at asc").Find(&history).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return history, nil
		}
		log.Printf("ERROR: Failed to get chat history for %s: %v", chatID, err)
		return nil, err
	}
	return history, nil
}

// GetMessagesForUser returns every message the user sent or received, newest
// first. The handler folds these into per-partner chat summaries.
func (s *Service) GetMessagesForUser(userID string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := s.DB.Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at desc").
		Find(&messages).Error
	if err != nil {
		log.Printf("ERROR: Failed to get messages for user %s: %v", userID, err)
		return nil, err
	}
	return messages, nil
}

// DeleteMessagesBefore hard-deletes messages created before cutoff and
// returns how many rows went. The cleanup job runs this weekly.
func (s *Service) DeleteMessagesBefore(cutoff time.Time) (int64, error) {
	result := s.DB.Unscoped().
		Where("created_at < ?", cutoff).
		Delete(&models.ChatMessage{})
	if result.Error != nil {
		log.Printf("ERROR: Failed to delete messages before %s: %v", cutoff, result.Error)
	}
	return result.RowsAffected, result.Error
}

// MarkChatRead flags every message addressed to readerID in the chat as read.
func (s *Service) MarkChatRead(chatID, readerID string) error {
	return s.DB.Model(&models.ChatMessage{}).
		Where("chat_id = ? AND receiver_id = ? AND is_read = ?", chatID, readerID, false).
		Update("is_read", true).Error
}
