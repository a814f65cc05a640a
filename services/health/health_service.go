// Package health implements concurrent reachability probing of the central
// database and every registered plant database.
package health

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"plantchatapi/config"
	"plantchatapi/pkg/logger"

	_ "github.com/go-sql-driver/mysql"
)

// Report states, ordered by severity. The central database being down is
// always the most severe condition: no plant resolution can succeed without it.
const (
	StatusHealthy     = "healthy"
	StatusDegraded    = "degraded"
	StatusUnavailable = "unavailable"
)

// CentralName is the report key used for the central database.
const CentralName = "central"

// DatabaseStatus is the probe outcome for one database.
type DatabaseStatus struct {
	Reachable bool   `json:"reachable"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

// Report aggregates one probe round over all databases. Built fresh on every
// invocation, never persisted.
type Report struct {
	Status    string                    `json:"status"`
	Databases map[string]DatabaseStatus `json:"databases"`
}

// PlantStatus pairs a registered plant key with its current reachability.
type PlantStatus struct {
	PlantKey  string `json:"plant_key"`
	Reachable bool   `json:"reachable"`
}

// ProbeFunc checks one database given its DSN. Replaceable in tests.
type ProbeFunc func(ctx context.Context, dsn string) error

// HealthService probes database reachability on demand.
type HealthService interface {
	Check(ctx context.Context) Report
	Plants(ctx context.Context) []PlantStatus
}

type healthService struct {
	registry *config.PlantRegistry
	probe    ProbeFunc
}

// NewHealthService creates a health service over the plant registry.
func NewHealthService(registry *config.PlantRegistry) HealthService {
	return &healthService{registry: registry, probe: defaultProbe}
}

// NewHealthServiceWithProbe creates a health service with a custom prober.
// Used by tests.
func NewHealthServiceWithProbe(registry *config.PlantRegistry, probe ProbeFunc) HealthService {
	return &healthService{registry: registry, probe: probe}
}

// defaultProbe dials the database directly instead of going through the
// shared pool, so a probe can never poison a cached connection.
func defaultProbe(ctx context.Context, dsn string) error {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.PingContext(ctx)
}

func (s *healthService) probeTimeout() time.Duration {
	if config.Cfg.ProbeTimeout > 0 {
		return config.Cfg.ProbeTimeout
	}
	return 5 * time.Second
}

// Check probes the central database and every registered plant concurrently.
// Each probe has its own timeout; one unreachable database records its own
// failure without delaying or aborting the others.
func (s *healthService) Check(ctx context.Context) Report {
	type target struct {
		name string
		dsn  string
	}
	targets := []target{{name: CentralName, dsn: config.CentralDSN()}}
	for _, key := range s.registry.Keys() {
		desc, err := s.registry.Resolve(key)
		if err != nil {
			continue
		}
		targets = append(targets, target{name: key, dsn: desc.DSN()})
	}

	report := Report{Databases: make(map[string]DatabaseStatus, len(targets))}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, tgt := range targets {
		wg.Add(1)
		go func(tgt target) {
			defer wg.Done()
			status := s.probeOne(ctx, tgt.dsn)
			mu.Lock()
			report.Databases[tgt.name] = status
			mu.Unlock()
		}(tgt)
	}
	wg.Wait()

	report.Status = StatusHealthy
	for name, status := range report.Databases {
		if status.Reachable {
			continue
		}
		if name == CentralName {
			report.Status = StatusUnavailable
			break
		}
		report.Status = StatusDegraded
	}

	if report.Status != StatusHealthy {
		logger.Warnf("Health check result: %s", report.Status)
	}
	return report
}

func (s *healthService) probeOne(ctx context.Context, dsn string) DatabaseStatus {
	probeCtx, cancel := context.WithTimeout(ctx, s.probeTimeout())
	defer cancel()

	start := time.Now()
	err := s.probe(probeCtx, dsn)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return DatabaseStatus{Reachable: false, LatencyMS: latency, Error: err.Error()}
	}
	return DatabaseStatus{Reachable: true, LatencyMS: latency}
}

// Plants reports the registered plant keys with their current reachability,
// in sorted key order.
func (s *healthService) Plants(ctx context.Context) []PlantStatus {
	report := s.Check(ctx)
	keys := s.registry.Keys()
	statuses := make([]PlantStatus, 0, len(keys))
	for _, key := range keys {
		statuses = append(statuses, PlantStatus{
			PlantKey:  key,
			Reachable: report.Databases[key].Reachable,
		})
	}
	return statuses
}
