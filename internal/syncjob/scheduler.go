package syncjob

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// Scheduler invokes the sync job on a fixed interval. The owning process
// holds the only reference and stops it during shutdown.
type Scheduler struct {
	job      *Job
	interval time.Duration
	logger   *log.Logger

	ticker   *time.Ticker
	stopCh   chan struct{}
	stopOnce sync.Once

	mu      sync.Mutex
	running bool
}

func NewScheduler(job *Job, interval time.Duration, logger *log.Logger) *Scheduler {
	return &Scheduler{
		job:      job,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic sync loop. Calling Start on a running scheduler
// is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.ticker = time.NewTicker(s.interval)
	s.mu.Unlock()

	s.logger.Printf("sync scheduler started, interval %s", s.interval)
	go s.run()
}

func (s *Scheduler) run() {
	for {
		select {
		case <-s.ticker.C:
			count, err := s.job.Run(context.Background())
			switch {
			case errors.Is(err, ErrNoCarts):
				s.logger.Printf("scheduled sync: remote returned no carts")
			case err != nil:
				s.logger.Printf("scheduled sync failed: %v", err)
			default:
				s.logger.Printf("scheduled sync: %d carts synchronized", count)
			}
		case <-s.stopCh:
			return
		}
	}
}

// Stop halts the periodic loop. An in-flight run is left to finish; the
// store's per-batch transaction keeps an abandoned run harmless.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.stopCh)
		s.running = false
		s.logger.Printf("sync scheduler stopped")
	})
}
