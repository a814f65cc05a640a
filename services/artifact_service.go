package services

import (
	"errors"
	"fmt"

	"plantchatapi/models"
	"plantchatapi/pkg/apierrors"
	"plantchatapi/pkg/logger"
	"plantchatapi/repository"
	"plantchatapi/utils"

	"gorm.io/gorm"
)

// CreateArtifactParams carries the validated inputs for a new artifact.
type CreateArtifactParams struct {
	SessionID    string  `validate:"required"`
	Title        string  `validate:"required"`
	Content      string  `validate:"required"`
	ArtifactType string
	Metadata     *string
	MessageID    *uint
}

// ArtifactService implements artifact operations against a plant database.
type ArtifactService interface {
	Create(db *gorm.DB, userID uint, params CreateArtifactParams) (*models.Artifact, error)
	GetByID(db *gorm.DB, id uint) (*models.Artifact, error)
	ListBySession(db *gorm.DB, sessionID string, p utils.PaginationParams) ([]models.Artifact, int64, error)
	Delete(db *gorm.DB, id uint) error
}

type artifactService struct {
	artifactRepo repository.ArtifactRepository
	sessionRepo  repository.ChatSessionRepository
}

// NewArtifactService creates a new artifact service instance.
func NewArtifactService() ArtifactService {
	return &artifactService{
		artifactRepo: repository.NewArtifactRepository(),
		sessionRepo:  repository.NewChatSessionRepository(),
	}
}

func (s *artifactService) Create(db *gorm.DB, userID uint, params CreateArtifactParams) (*models.Artifact, error) {
	if err := utils.ValidateStruct(params); err != nil {
		return nil, apierrors.Wrap(apierrors.BadRequest, "artifact.Create", "invalid artifact", err)
	}
	if _, err := s.sessionRepo.GetBySessionID(db, params.SessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.New(apierrors.NotFound, "artifact.Create",
				"session %s not found", params.SessionID)
		}
		return nil, fmt.Errorf("failed to load session %s: %w", params.SessionID, err)
	}

	artifactType := params.ArtifactType
	if artifactType == "" {
		artifactType = "general"
	}
	artifact := &models.Artifact{
		SessionID:    params.SessionID,
		UserID:       userID,
		MessageID:    params.MessageID,
		Title:        params.Title,
		Content:      params.Content,
		ArtifactType: artifactType,
		Metadata:     params.Metadata,
	}
	if err := s.artifactRepo.Create(db, artifact); err != nil {
		return nil, fmt.Errorf("failed to create artifact: %w", err)
	}
	logger.Infof("Created artifact %d for session %s", artifact.ID, artifact.SessionID)
	return artifact, nil
}

func (s *artifactService) GetByID(db *gorm.DB, id uint) (*models.Artifact, error) {
	artifact, err := s.artifactRepo.GetByID(db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.New(apierrors.NotFound, "artifact.GetByID",
				"artifact %d not found", id)
		}
		return nil, fmt.Errorf("failed to load artifact %d: %w", id, err)
	}
	return artifact, nil
}

func (s *artifactService) ListBySession(db *gorm.DB, sessionID string, p utils.PaginationParams) ([]models.Artifact, int64, error) {
	total, err := s.artifactRepo.CountBySession(db, sessionID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count artifacts for session %s: %w", sessionID, err)
	}
	artifacts, err := s.artifactRepo.ListBySession(db, sessionID, p.Skip, p.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list artifacts for session %s: %w", sessionID, err)
	}
	return artifacts, total, nil
}

func (s *artifactService) Delete(db *gorm.DB, id uint) error {
	if _, err := s.GetByID(db, id); err != nil {
		return err
	}
	if err := s.artifactRepo.Delete(db, id); err != nil {
		return fmt.Errorf("failed to delete artifact %d: %w", id, err)
	}
	logger.Infof("Deleted artifact %d", id)
	return nil
}
