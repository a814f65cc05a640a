package plantdb

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"plantchatapi/config"
	"plantchatapi/pkg/apierrors"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockGormDB(t *testing.T) *gorm.DB {
	t.Helper()
	sqlDB, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm.Open error: %v", err)
	}
	return db
}

func testRegistry(keys ...string) *config.PlantRegistry {
	descriptors := make([]config.PlantDescriptor, 0, len(keys))
	for _, k := range keys {
		descriptors = append(descriptors, config.PlantDescriptor{
			PlantKey: k,
			Host:     "db-" + k,
			Port:     3306,
			User:     "chat",
			Password: "secret",
			Name:     "plant_" + k,
		})
	}
	return config.NewPlantRegistry(descriptors)
}

func TestGet_ConcurrentFirstUse_SingleConstruction(t *testing.T) {
	var opens int32
	pool := NewPoolWithOpener(testRegistry("CAIRO"), nil, func(dsn string) (*gorm.DB, error) {
		atomic.AddInt32(&opens, 1)
		return newMockGormDB(t), nil
	})

	const callers = 16
	results := make([]*gorm.DB, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	var start sync.WaitGroup
	start.Add(1)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			start.Wait()
			results[i], errs[i] = pool.Get(context.Background(), "CAIRO")
		}(i)
	}
	start.Done()
	wg.Wait()

	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d error: %v", i, errs[i])
		}
		if results[i] != results[0] {
			t.Fatalf("caller %d received a different pool instance", i)
		}
	}
	if got := atomic.LoadInt32(&opens); got != 1 {
		t.Errorf("expected exactly 1 pool construction, got %d", got)
	}
}

func TestGet_UnknownPlant_NotFoundBeforeAnyConnection(t *testing.T) {
	var opens int32
	pool := NewPoolWithOpener(testRegistry("CAIRO"), nil, func(dsn string) (*gorm.DB, error) {
		atomic.AddInt32(&opens, 1)
		return newMockGormDB(t), nil
	})

	_, err := pool.Get(context.Background(), "ATLANTIS")
	if err == nil {
		t.Fatal("expected error for unknown plant")
	}
	if !apierrors.IsKind(err, apierrors.NotFound) {
		t.Errorf("expected NotFound kind, got %v", err)
	}
	if atomic.LoadInt32(&opens) != 0 {
		t.Error("no connection must be attempted for an unknown plant")
	}
}

func TestGet_FailureIsolatedPerPlant(t *testing.T) {
	pool := NewPoolWithOpener(testRegistry("CAIRO", "LUXOR"), nil, func(dsn string) (*gorm.DB, error) {
		if strings.Contains(dsn, "db-CAIRO") {
			return nil, errors.New("dial tcp: connection refused")
		}
		return newMockGormDB(t), nil
	})

	_, err := pool.Get(context.Background(), "CAIRO")
	if err == nil {
		t.Fatal("expected error for unreachable plant")
	}
	if !apierrors.IsKind(err, apierrors.ServiceUnavailable) {
		t.Errorf("expected ServiceUnavailable kind, got %v", err)
	}

	if _, err := pool.Get(context.Background(), "LUXOR"); err != nil {
		t.Errorf("unreachable CAIRO must not affect LUXOR: %v", err)
	}
}

func TestGet_FailureIsNotCached(t *testing.T) {
	var opens int32
	pool := NewPoolWithOpener(testRegistry("CAIRO"), nil, func(dsn string) (*gorm.DB, error) {
		if atomic.AddInt32(&opens, 1) == 1 {
			return nil, errors.New("dial tcp: connection refused")
		}
		return newMockGormDB(t), nil
	})

	if _, err := pool.Get(context.Background(), "CAIRO"); err == nil {
		t.Fatal("expected first Get to fail")
	}
	if pool.Cached("CAIRO") {
		t.Fatal("failed construction must not be cached")
	}
	if _, err := pool.Get(context.Background(), "CAIRO"); err != nil {
		t.Fatalf("second Get should retry and succeed: %v", err)
	}
	if !pool.Cached("CAIRO") {
		t.Error("successful construction should be cached")
	}
	if got := atomic.LoadInt32(&opens); got != 2 {
		t.Errorf("expected 2 open attempts, got %d", got)
	}
}

func TestGet_ReusesCachedPool(t *testing.T) {
	var opens int32
	pool := NewPoolWithOpener(testRegistry("CAIRO"), nil, func(dsn string) (*gorm.DB, error) {
		atomic.AddInt32(&opens, 1)
		return newMockGormDB(t), nil
	})

	first, err := pool.Get(context.Background(), "CAIRO")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	// Same plant under a different case and surrounding whitespace.
	second, err := pool.Get(context.Background(), " cairo ")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if first != second {
		t.Error("expected the cached pool to be reused")
	}
	if got := atomic.LoadInt32(&opens); got != 1 {
		t.Errorf("expected 1 pool construction, got %d", got)
	}
}

func TestCentral(t *testing.T) {
	central := newMockGormDB(t)
	pool := NewPool(testRegistry(), central)
	if pool.Central() != central {
		t.Error("Central() must return the handle given at construction")
	}
}
