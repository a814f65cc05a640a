package repository

import (
	"plantchatapi/models"

	"gorm.io/gorm"
)

// ChatSessionRepository provides data access for chat sessions. All methods
// take the request-scoped plant database handle; session data never lives in
// the central database and this repository never opens connections itself.
type ChatSessionRepository interface {
	Create(db *gorm.DB, session *models.ChatSession) error
	GetBySessionID(db *gorm.DB, sessionID string) (*models.ChatSession, error)
	Delete(db *gorm.DB, sessionID string) error
}

type chatSessionRepository struct{}

// NewChatSessionRepository creates a new chat session repository instance.
func NewChatSessionRepository() ChatSessionRepository {
	return &chatSessionRepository{}
}

func (r *chatSessionRepository) Create(db *gorm.DB, session *models.ChatSession) error {
	return db.Create(session).Error
}

func (r *chatSessionRepository) GetBySessionID(db *gorm.DB, sessionID string) (*models.ChatSession, error) {
	var session models.ChatSession
	if err := db.Where("session_id = ?", sessionID).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *chatSessionRepository) Delete(db *gorm.DB, sessionID string) error {
	return db.Where("session_id = ?", sessionID).Delete(&models.ChatSession{}).Error
}
