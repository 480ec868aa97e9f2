package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Gunvolt24/logistics/internal/domain"
	"github.com/Gunvolt24/logistics/internal/ports"
	"golang.org/x/sync/errgroup"
)

var _ ports.HealthService = (*HealthService)(nil)

const (
	healthCheckKey = "health_check"
	healthCheckTTL = 10 * time.Second
)

var errHealthMismatch = errors.New("health probe value mismatch")

// HealthService — проверка реляционного хранилища и кэша с замером задержки.
type HealthService struct {
	db      ports.Pinger
	cache   ports.CacheStore
	log     ports.Logger
	started time.Time
	now     func() time.Time
}

func NewHealthService(db ports.Pinger, cache ports.CacheStore, log ports.Logger) *HealthService {
	return &HealthService{db: db, cache: cache, log: log, started: time.Now(), now: time.Now}
}

// Check — обе зависимости проверяются параллельно; отказ одной не прерывает другую.
func (s *HealthService) Check(ctx context.Context) domain.HealthReport {
	var (
		mu       sync.Mutex
		services = make(map[string]domain.ServiceStatus, 2)
	)
	probe := func(name string, fn func(context.Context) error) func() error {
		return func() error {
			st := s.probe(ctx, name, fn)
			mu.Lock()
			services[name] = st
			mu.Unlock()
			return nil
		}
	}

	var g errgroup.Group
	g.Go(probe("database", s.db.Ping))
	g.Go(probe("cache", s.pingCache))
	_ = g.Wait()

	status := "healthy"
	for _, st := range services {
		if st.Status != domain.HealthUp {
			status = "unhealthy"
		}
	}

	now := s.now()
	return domain.HealthReport{
		Status:    status,
		Timestamp: now.UTC(),
		Uptime:    int64(now.Sub(s.started).Seconds()),
		Services:  services,
	}
}

func (s *HealthService) probe(ctx context.Context, name string, fn func(context.Context) error) domain.ServiceStatus {
	start := time.Now()
	if err := fn(ctx); err != nil {
		s.log.Errorf(ctx, "health check %s failed: %v", name, err)
		return domain.ServiceStatus{Status: domain.HealthDown, Error: err.Error()}
	}
	return domain.ServiceStatus{Status: domain.HealthUp, LatencyMs: time.Since(start).Milliseconds()}
}

// pingCache — запись и чтение служебного ключа health_check.
func (s *HealthService) pingCache(ctx context.Context) error {
	if err := s.cache.Set(ctx, healthCheckKey, "ok", healthCheckTTL); err != nil {
		return err
	}
	var got string
	if !s.cache.Get(ctx, healthCheckKey, &got) || got != "ok" {
		return errHealthMismatch
	}
	return nil
}
