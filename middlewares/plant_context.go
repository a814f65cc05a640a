// Package middlewares contains the gin middleware that routes each request
// to its plant database and enforces plant access control.
package middlewares

import (
	"context"
	"strconv"
	"strings"

	"plantchatapi/pkg/apierrors"
	"plantchatapi/pkg/logger"
	"plantchatapi/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Required routing headers.
const (
	HeaderPlantID = "Plant-Id"
	HeaderUserID  = "X-User-Id"
)

const contextKey = "plantRequestContext"

// RequestPlantContext is the per-request routing outcome: the validated
// identity pair plus an open handle to the plant database. It lives for one
// request only and is never cached or shared; handlers must take plant_id and
// user_id from here, never from the headers again.
type RequestPlantContext struct {
	PlantID string
	UserID  uint
	DB      *gorm.DB
}

// ConnectionProvider yields the pooled database handle for a plant.
// Implemented by plantdb.Pool.
type ConnectionProvider interface {
	Get(ctx context.Context, plantID string) (*gorm.DB, error)
}

// AccessChecker decides plant access for a user. Implemented by
// access.AccessService.
type AccessChecker interface {
	CheckAccess(ctx context.Context, userID uint, plantID string) (bool, error)
}

// PlantContext builds the request-scoped plant context. Per request it parses
// the routing headers, acquires the plant connection and checks access, in
// that order; the first failing step rejects the request before any later
// work happens. Header problems are rejected before any database call.
func PlantContext(pool ConnectionProvider, access AccessChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		plantID := strings.TrimSpace(c.GetHeader(HeaderPlantID))
		if plantID == "" {
			utils.AbortWithError(c, apierrors.New(apierrors.BadRequest,
				"middlewares.PlantContext", "missing required header %s", HeaderPlantID))
			return
		}

		userStr := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if userStr == "" {
			utils.AbortWithError(c, apierrors.New(apierrors.BadRequest,
				"middlewares.PlantContext", "missing required header %s", HeaderUserID))
			return
		}
		userID, err := strconv.ParseUint(userStr, 10, 32)
		if err != nil {
			utils.AbortWithError(c, apierrors.New(apierrors.BadRequest,
				"middlewares.PlantContext", "malformed %s header", HeaderUserID))
			return
		}

		db, err := pool.Get(c.Request.Context(), plantID)
		if err != nil {
			// NotFound for an unregistered plant, ServiceUnavailable for a
			// registered but unreachable one.
			utils.AbortWithError(c, err)
			return
		}

		allowed, err := access.CheckAccess(c.Request.Context(), uint(userID), plantID)
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}
		if !allowed {
			utils.AbortWithError(c, apierrors.New(apierrors.Forbidden,
				"middlewares.PlantContext", "user %d does not have access to plant %s", userID, plantID))
			return
		}

		logger.Debugf("Plant context attached: plant=%s user=%d", plantID, userID)
		c.Set(contextKey, &RequestPlantContext{
			PlantID: plantID,
			UserID:  uint(userID),
			DB:      db,
		})
		c.Next()
	}
}

// FromContext returns the plant context attached by PlantContext. The second
// return is false on routes that are not behind the middleware.
func FromContext(c *gin.Context) (*RequestPlantContext, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil, false
	}
	pc, ok := v.(*RequestPlantContext)
	return pc, ok
}
