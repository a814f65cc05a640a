package repository

import (
	"plantchatapi/models"

	"gorm.io/gorm"
)

// ChatMessageRepository provides data access for chat messages inside a
// plant database. The handle is supplied per call by the request context.
type ChatMessageRepository interface {
	Create(db *gorm.DB, message *models.ChatMessage) error
	ListBySession(db *gorm.DB, sessionID string, offset, limit int) ([]models.ChatMessage, error)
	CountBySession(db *gorm.DB, sessionID string) (int64, error)
}

type chatMessageRepository struct{}

// NewChatMessageRepository creates a new chat message repository instance.
func NewChatMessageRepository() ChatMessageRepository {
	return &chatMessageRepository{}
}

func (r *chatMessageRepository) Create(db *gorm.DB, message *models.ChatMessage) error {
	return db.Create(message).Error
}

func (r *chatMessageRepository) ListBySession(db *gorm.DB, sessionID string, offset, limit int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := db.Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *chatMessageRepository) CountBySession(db *gorm.DB, sessionID string) (int64, error) {
	var count int64
	err := db.Model(&models.ChatMessage{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
