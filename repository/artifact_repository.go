package repository

import (
	"plantchatapi/models"

	"gorm.io/gorm"
)

// ArtifactRepository provides data access for artifacts inside a plant database.
type ArtifactRepository interface {
	Create(db *gorm.DB, artifact *models.Artifact) error
	GetByID(db *gorm.DB, id uint) (*models.Artifact, error)
	ListBySession(db *gorm.DB, sessionID string, offset, limit int) ([]models.Artifact, error)
	CountBySession(db *gorm.DB, sessionID string) (int64, error)
	Delete(db *gorm.DB, id uint) error
}

type artifactRepository struct{}

// NewArtifactRepository creates a new artifact repository instance.
func NewArtifactRepository() ArtifactRepository {
	return &artifactRepository{}
}

func (r *artifactRepository) Create(db *gorm.DB, artifact *models.Artifact) error {
	return db.Create(artifact).Error
}

func (r *artifactRepository) GetByID(db *gorm.DB, id uint) (*models.Artifact, error) {
	var artifact models.Artifact
	if err := db.Where("id = ?", id).First(&artifact).Error; err != nil {
		return nil, err
	}
	return &artifact, nil
}

func (r *artifactRepository) ListBySession(db *gorm.DB, sessionID string, offset, limit int) ([]models.Artifact, error) {
	var artifacts []models.Artifact
	err := db.Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&artifacts).Error
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

func (r *artifactRepository) CountBySession(db *gorm.DB, sessionID string) (int64, error) {
	var count int64
	err := db.Model(&models.Artifact{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *artifactRepository) Delete(db *gorm.DB, id uint) error {
	return db.Where("id = ?", id).Delete(&models.Artifact{}).Error
}
