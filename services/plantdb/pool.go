// Package plantdb owns the process-wide cache of plant database pools.
//
// One pooled GORM handle exists per plant key, created lazily on first use
// and retained until shutdown. The cache is keyed strictly by plant key,
// never by user: a pool is shared by every request targeting that plant, so
// authorization is re-validated on every request even though the connection
// is not.
package plantdb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"plantchatapi/config"
	"plantchatapi/pkg/apierrors"
	"plantchatapi/pkg/logger"

	"golang.org/x/sync/singleflight"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// OpenFunc opens a database handle for a DSN. Replaceable in tests.
type OpenFunc func(dsn string) (*gorm.DB, error)

// Pool resolves plant identifiers to pooled database handles. It is shared
// process-wide; construct exactly one with NewPool and pass it around.
type Pool struct {
	registry *config.PlantRegistry
	central  *gorm.DB
	open     OpenFunc

	mu    sync.RWMutex
	pools map[string]*gorm.DB
	group singleflight.Group
}

// NewPool creates a pool over the given registry and central database handle.
func NewPool(registry *config.PlantRegistry, central *gorm.DB) *Pool {
	return &Pool{
		registry: registry,
		central:  central,
		open:     defaultOpen,
		pools:    make(map[string]*gorm.DB),
	}
}

// NewPoolWithOpener creates a pool using a custom opener. Used by tests to
// stub out the underlying connection.
func NewPoolWithOpener(registry *config.PlantRegistry, central *gorm.DB, open OpenFunc) *Pool {
	p := NewPool(registry, central)
	p.open = open
	return p
}

func defaultOpen(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(config.Cfg.PoolMaxOpenConns)
	sqlDB.SetMaxIdleConns(config.Cfg.PoolMaxIdleConns)
	sqlDB.SetConnMaxLifetime(config.Cfg.PoolConnMaxLifetime)
	return db, nil
}

// Central returns the pooled handle to the central database.
func (p *Pool) Central() *gorm.DB {
	return p.central
}

// Get returns the pooled handle for plantID, creating it on first use.
// Concurrent first-use callers for the same plant are collapsed to a single
// construction; losers wait for and share the winner's pool. A construction
// failure is returned to every waiting caller and nothing is cached, so the
// next request retries. Failures for one plant never affect other plants.
func (p *Pool) Get(ctx context.Context, plantID string) (*gorm.DB, error) {
	desc, err := p.registry.Resolve(plantID)
	if err != nil {
		return nil, err
	}
	key := desc.PlantKey

	p.mu.RLock()
	db, ok := p.pools[key]
	p.mu.RUnlock()
	if ok {
		return db, nil
	}

	v, err, _ := p.group.Do(key, func() (interface{}, error) {
		// Recheck under the flight: a previous winner may have populated
		// the cache between the read above and this call.
		p.mu.RLock()
		db, ok := p.pools[key]
		p.mu.RUnlock()
		if ok {
			return db, nil
		}
		db, err := p.connect(ctx, desc)
		if err != nil {
			return nil, err
		}
		p.mu.Lock()
		p.pools[key] = db
		p.mu.Unlock()
		return db, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*gorm.DB), nil
}

func (p *Pool) connect(ctx context.Context, desc config.PlantDescriptor) (*gorm.DB, error) {
	logger.Infof("Creating connection pool for plant %s (%s:%d/%s)",
		desc.PlantKey, desc.Host, desc.Port, desc.Name)

	db, err := p.open(desc.DSN())
	if err != nil {
		logger.Errorf("Pool creation failed for plant %s: %v", desc.PlantKey, err)
		return nil, apierrors.Wrap(apierrors.ServiceUnavailable, "plantdb.Get",
			fmt.Sprintf("plant %s database unavailable", desc.PlantKey), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, apierrors.Wrap(apierrors.ServiceUnavailable, "plantdb.Get",
			fmt.Sprintf("plant %s database unavailable", desc.PlantKey), err)
	}

	timeout := config.Cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		logger.Errorf("Ping failed for plant %s: %v", desc.PlantKey, err)
		return nil, apierrors.Wrap(apierrors.ServiceUnavailable, "plantdb.Get",
			fmt.Sprintf("plant %s database unavailable", desc.PlantKey), err)
	}

	logger.Infof("Connection pool ready for plant %s", desc.PlantKey)
	return db, nil
}

// Cached reports whether a pool already exists for plantID, without creating
// one. Used by health reporting and tests.
func (p *Pool) Cached(plantID string) bool {
	desc, err := p.registry.Resolve(plantID)
	if err != nil {
		return false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.pools[desc.PlantKey]
	return ok
}

// Close releases every plant pool and the central pool. Called once at
// process shutdown.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for key, db := range p.pools {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		delete(p.pools, key)
		logger.Infof("Closed connection pool for plant %s", key)
	}
	if p.central != nil {
		if sqlDB, err := p.central.DB(); err == nil {
			if err := sqlDB.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
