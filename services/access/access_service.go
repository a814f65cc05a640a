// Package access implements the plant access-control validator backed by the
// central database.
package access

import (
	"context"
	"time"

	"plantchatapi/config"
	"plantchatapi/pkg/apierrors"
	"plantchatapi/pkg/logger"
	"plantchatapi/repository"

	"gorm.io/gorm"
)

// AccessService decides whether a user may talk to a plant database.
type AccessService interface {
	// CheckAccess returns true when the central database holds a grant for
	// (userID, plantID). A missing grant and an unknown user are both plain
	// Denied: the outcome never reveals which case occurred. A central
	// database failure is returned as an error, never silently as Denied.
	CheckAccess(ctx context.Context, userID uint, plantID string) (bool, error)
}

type accessService struct {
	repo repository.AccessRepository
}

// NewAccessService creates an access service over the central database handle.
func NewAccessService(central *gorm.DB) AccessService {
	return &accessService{repo: repository.NewAccessRepository(central)}
}

// NewAccessServiceWithRepository creates an access service with an explicit
// repository. Used by tests.
func NewAccessServiceWithRepository(repo repository.AccessRepository) AccessService {
	return &accessService{repo: repo}
}

func (s *accessService) CheckAccess(ctx context.Context, userID uint, plantID string) (bool, error) {
	timeout := config.Cfg.AccessQueryTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	queryCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	count, err := s.repo.CountGrants(queryCtx, userID, plantID)
	if err != nil {
		logger.Errorf("Access check failed for plant %s: central database error: %v", plantID, err)
		return false, apierrors.Wrap(apierrors.ServiceUnavailable, "access.CheckAccess",
			"central database unavailable", err)
	}

	if count == 0 {
		// Audit log only; the reason for the denial is deliberately not recorded.
		logger.Warnf("Access denied for user %d to plant %s", userID, plantID)
		return false, nil
	}

	logger.Debugf("Access granted for user %d to plant %s", userID, plantID)
	return true, nil
}
