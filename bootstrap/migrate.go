package bootstrap

import (
	"fmt"

	"plantchatapi/models"
	"plantchatapi/pkg/logger"

	"gorm.io/gorm"
)

// MigrateCentral creates the central database tables this service reads.
// Only the access-grant relation lives here; chat and artifact tables belong
// to the plant databases and are owned by the plant provisioning tooling,
// never created from this service.
func MigrateCentral(db *gorm.DB) error {
	logger.Infof("Running central database migrations...")

	if err := db.AutoMigrate(&models.UserPlantAccess{}); err != nil {
		logger.Errorf("Central migration failed: %v", err)
		return fmt.Errorf("central migration failed: %v", err)
	}

	logger.Infof("Central database migrations completed")
	return nil
}
