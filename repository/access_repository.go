package repository

import (
	"context"

	"plantchatapi/models"

	"gorm.io/gorm"
)

// AccessRepository reads plant access grants from the central database.
type AccessRepository interface {
	CountGrants(ctx context.Context, userID uint, plantID string) (int64, error)
}

type accessRepository struct {
	db *gorm.DB
}

// NewAccessRepository creates an access repository over the central database handle.
func NewAccessRepository(db *gorm.DB) AccessRepository {
	return &accessRepository{db: db}
}

func (r *accessRepository) CountGrants(ctx context.Context, userID uint, plantID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserPlantAccess{}).
		Where("user_id = ? AND plant_id = ?", userID, plantID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
