package scheduler

import (
	"aurora/internal/backends"
	"aurora/internal/providers"
	"aurora/internal/services"
	"aurora/internal/structures"
	"context"
	"sync"
	"time"
)

type SchedulerInterface interface {
	Init()
	Stop()
}

// Scheduler runs the periodic housekeeping jobs: the cooldown map sweep and
// the (inert) backend monitor.
type Scheduler struct {
	config   *structures.Config
	logger   providers.Logger
	limiter  services.RateLimiterInterface
	sessions services.SessionServiceInterface
	registry backends.RegistryInterface
	metrics  providers.MetricsProviderInterface

	opsMu  sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func (s *Scheduler) Init() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	interval := s.config.RateLimit.SweepInterval
	if interval <= 0 {
		interval = time.Minute
	}
	s.every(ctx, interval, s.sweep)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.registry.Monitor(ctx)
	}()
}

func (s *Scheduler) every(ctx context.Context, interval time.Duration, job func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				job()
			}
		}
	}()
}

func (s *Scheduler) sweep() {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	removed := s.limiter.Sweep()
	size := s.limiter.Size()
	s.metrics.SetRateLimiterKeys(size)
	s.logger.Debugf(providers.TypeApp, "Cooldown sweep removed %d keys, %d tracked, %d sessions cached", removed, size, s.sessions.Count())
}

func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func NewScheduler(config *structures.Config, logger providers.Logger, limiter services.RateLimiterInterface, sessions services.SessionServiceInterface, registry backends.RegistryInterface, metrics providers.MetricsProviderInterface) SchedulerInterface {
	return &Scheduler{
		config:   config,
		logger:   logger,
		limiter:  limiter,
		sessions: sessions,
		registry: registry,
		metrics:  metrics,
	}
}
