package services

import (
	"errors"
	"fmt"

	"plantchatapi/models"
	"plantchatapi/pkg/apierrors"
	"plantchatapi/pkg/logger"
	"plantchatapi/repository"
	"plantchatapi/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatService implements chat session and message operations against a
// plant database. The handle comes from the request context; this service
// never opens or caches connections itself.
type ChatService interface {
	CreateSession(db *gorm.DB, userID uint) (*models.ChatSession, error)
	GetSessionInfo(db *gorm.DB, sessionID string) (*models.ChatSession, error)
	GetSessionHistory(db *gorm.DB, sessionID string, p utils.PaginationParams) ([]models.ChatMessage, int64, error)
	SendMessage(db *gorm.DB, sessionID string, userID uint, message string) (*models.ChatMessage, error)
	DeleteSession(db *gorm.DB, sessionID string) error
}

type chatService struct {
	sessionRepo repository.ChatSessionRepository
	messageRepo repository.ChatMessageRepository
}

// NewChatService creates a new chat service instance.
func NewChatService() ChatService {
	return &chatService{
		sessionRepo: repository.NewChatSessionRepository(),
		messageRepo: repository.NewChatMessageRepository(),
	}
}

func (s *chatService) CreateSession(db *gorm.DB, userID uint) (*models.ChatSession, error) {
	session := &models.ChatSession{
		SessionID: uuid.NewString(),
		UserID:    userID,
	}
	if err := s.sessionRepo.Create(db, session); err != nil {
		return nil, fmt.Errorf("failed to create chat session: %w", err)
	}
	logger.Infof("Created chat session %s for user %d", session.SessionID, userID)
	return session, nil
}

func (s *chatService) GetSessionInfo(db *gorm.DB, sessionID string) (*models.ChatSession, error) {
	session, err := s.sessionRepo.GetBySessionID(db, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.New(apierrors.NotFound, "chat.GetSessionInfo",
				"session %s not found", sessionID)
		}
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	return session, nil
}

func (s *chatService) GetSessionHistory(db *gorm.DB, sessionID string, p utils.PaginationParams) ([]models.ChatMessage, int64, error) {
	if _, err := s.GetSessionInfo(db, sessionID); err != nil {
		return nil, 0, err
	}
	total, err := s.messageRepo.CountBySession(db, sessionID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count messages for session %s: %w", sessionID, err)
	}
	messages, err := s.messageRepo.ListBySession(db, sessionID, p.Skip, p.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list messages for session %s: %w", sessionID, err)
	}
	return messages, total, nil
}

func (s *chatService) SendMessage(db *gorm.DB, sessionID string, userID uint, message string) (*models.ChatMessage, error) {
	if _, err := s.GetSessionInfo(db, sessionID); err != nil {
		return nil, err
	}
	msg := &models.ChatMessage{
		SessionID: sessionID,
		UserID:    userID,
		Message:   message,
	}
	if err := s.messageRepo.Create(db, msg); err != nil {
		return nil, fmt.Errorf("failed to store message for session %s: %w", sessionID, err)
	}
	logger.Debugf("Stored message %d in session %s", msg.ID, sessionID)
	return msg, nil
}

func (s *chatService) DeleteSession(db *gorm.DB, sessionID string) error {
	if _, err := s.GetSessionInfo(db, sessionID); err != nil {
		return err
	}
	if err := s.sessionRepo.Delete(db, sessionID); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	logger.Infof("Deleted chat session %s", sessionID)
	return nil
}
