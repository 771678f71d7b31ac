package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// SpoolStore exposes the spool operations required by the sweeper.
type SpoolStore interface {
	Expired(maxAge time.Duration) ([]string, error)
	Remove(path string) error
}

// SweepRecorder counts removed files.
type SweepRecorder interface {
	RecordSweptFile()
}

// SpoolSweeper periodically removes spooled uploads older than maxAge.
type SpoolSweeper struct {
	store    SpoolStore
	interval time.Duration
	maxAge   time.Duration
	workers  int
	recorder SweepRecorder
	logger   *slog.Logger

	jobs   chan string
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSpoolSweeper constructs the sweeper worker pool. recorder may be nil.
func NewSpoolSweeper(store SpoolStore, interval, maxAge time.Duration, workers int, recorder SweepRecorder, logger *slog.Logger) *SpoolSweeper {
	if workers <= 0 {
		workers = 1
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &SpoolSweeper{
		store:    store,
		interval: interval,
		maxAge:   maxAge,
		workers:  workers,
		recorder: recorder,
		logger:   logger,
		jobs:     make(chan string, workers*4),
	}
}

// Start launches background sweeping.
func (s *SpoolSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(runCtx)
	}

	s.wg.Add(1)
	go s.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (s *SpoolSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *SpoolSweeper) dispatch(ctx context.Context) {
	defer s.wg.Done()
	defer close(s.jobs)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.listAndDispatch(ctx)
		}
	}
}

func (s *SpoolSweeper) listAndDispatch(ctx context.Context) {
	paths, err := s.store.Expired(s.maxAge)
	if err != nil {
		s.logger.Error("list expired spool files failed", slog.String("error", err.Error()))
		return
	}
	for _, path := range paths {
		select {
		case <-ctx.Done():
			return
		case s.jobs <- path:
		}
	}
}

func (s *SpoolSweeper) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-s.jobs:
			if !ok {
				return
			}
			s.remove(path)
		}
	}
}

func (s *SpoolSweeper) remove(path string) {
	if err := s.store.Remove(path); err != nil {
		s.logger.Error("remove spool file failed", slog.String("path", path), slog.String("error", err.Error()))
		return
	}
	if s.recorder != nil {
		s.recorder.RecordSweptFile()
	}
	s.logger.Debug("spool file removed", slog.String("path", path))
}
