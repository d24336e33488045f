package sweeper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"gocache/internal/cache"
	"gocache/internal/logger"
)

var (
	ErrSourceNil       = errors.New("sweeper: source is nil")
	ErrAlreadyStarted  = errors.New("sweeper: already started")
	ErrNotStarted      = errors.New("sweeper: not started")
	ErrShutdownTimeout = errors.New("sweeper: shutdown timeout exceeded")
)

// Source supplies the caches to sweep. It is asked again on every pass, so
// caches registered after Start are picked up.
type Source interface {
	Expirers() []cache.Expirer
}

// Report describes one sweep pass.
type Report struct {
	ID      string
	Caches  int
	Expired int
	Errors  []error
	Elapsed time.Duration
}

// Err joins the per-cache failures of the pass, or returns nil.
func (r Report) Err() error {
	return errors.Join(r.Errors...)
}

// Stats provides observability counters for the sweeper.
type Stats struct {
	Passes    int64 // Completed sweep passes
	Expired   int64 // Entries removed across all passes
	Failures  int64 // Per-cache sweep failures across all passes
	IsRunning bool
}

// Sweeper periodically calls Expire on every cache its source knows about.
type Sweeper struct {
	src             Source
	interval        time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	running  atomic.Bool
	passes   atomic.Int64
	expired  atomic.Int64
	failures atomic.Int64
}

// New creates a sweeper over src. The default interval is 30 seconds.
func New(src Source, opts ...Option) (*Sweeper, error) {
	if src == nil {
		return nil, ErrSourceNil
	}

	o := &options{
		interval:        30 * time.Second,
		shutdownTimeout: 5 * time.Second,
		logger:          logger.Discard(),
	}
	for _, opt := range opts {
		opt(o)
	}

	return &Sweeper{
		src:             src,
		interval:        o.interval,
		shutdownTimeout: o.shutdownTimeout,
		logger:          o.logger,
	}, nil
}

// Start runs sweep passes every interval until ctx is cancelled or Stop is called.
// It blocks; use Run for errgroup composition or call it in a goroutine.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	s.mu.Unlock()

	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.running.Store(true)
	defer s.running.Store(false)

	s.logger.InfoContext(ctx, "sweeper started",
		logger.Component("sweeper"),
		slog.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(context.Background(), "sweeper stopping", logger.Component("sweeper"))
			s.mu.Lock()
			s.cancel = nil
			s.mu.Unlock()
			return ctx.Err()
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// Stop cancels a running Start and waits for the in-flight pass, up to the shutdown timeout.
func (s *Sweeper) Stop() error {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel == nil {
		return ErrNotStarted
	}
	cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.InfoContext(context.Background(), "sweeper stopped cleanly", logger.Component("sweeper"))
		return nil
	case <-time.After(s.shutdownTimeout):
		s.logger.WarnContext(context.Background(), "sweeper shutdown timeout exceeded",
			logger.Component("sweeper"),
			slog.Duration("timeout", s.shutdownTimeout))
		return fmt.Errorf("%w after %s", ErrShutdownTimeout, s.shutdownTimeout)
	}
}

// Run provides errgroup compatibility. The returned function sweeps until ctx
// is cancelled and then returns nil.
func (s *Sweeper) Run(ctx context.Context) func() error {
	return func() error {
		err := s.Start(ctx)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		return err
	}
}

// SweepOnce runs a single pass over every cache from the source.
//
// A cache that fails or panics is logged and recorded in the report; the pass
// continues with the remaining caches.
func (s *Sweeper) SweepOnce(ctx context.Context) Report {
	start := time.Now()
	targets := s.src.Expirers()

	report := Report{
		ID:     uuid.NewString(),
		Caches: len(targets),
	}

	for _, target := range targets {
		if ctx.Err() != nil {
			break
		}

		n, err := expire(target)
		if err != nil {
			err = fmt.Errorf("sweep cache %q: %w", target.Name(), err)
			report.Errors = append(report.Errors, err)
			s.logger.ErrorContext(ctx, "cache sweep failed",
				logger.Component("sweeper"),
				logger.SweepID(report.ID),
				logger.CacheName(target.Name()),
				logger.Error(err))
			continue
		}

		report.Expired += n
		if n > 0 {
			s.logger.DebugContext(ctx, "expired entries removed",
				logger.Component("sweeper"),
				logger.SweepID(report.ID),
				logger.CacheName(target.Name()),
				logger.Count("expired", n))
		}
	}

	elapsed := logger.Elapsed(start)
	report.Elapsed = elapsed.Value.Duration()

	s.passes.Add(1)
	s.expired.Add(int64(report.Expired))
	s.failures.Add(int64(len(report.Errors)))

	level := slog.LevelDebug
	if len(report.Errors) > 0 {
		level = slog.LevelWarn
	}
	s.logger.LogAttrs(ctx, level, "sweep pass finished",
		logger.Component("sweeper"),
		logger.SweepID(report.ID),
		logger.Count("caches", report.Caches),
		logger.Count("expired", report.Expired),
		logger.Count("failures", len(report.Errors)),
		logger.Errors(report.Errors...),
		elapsed)

	return report
}

// Stats returns counters accumulated since the sweeper was created.
func (s *Sweeper) Stats() Stats {
	return Stats{
		Passes:    s.passes.Load(),
		Expired:   s.expired.Load(),
		Failures:  s.failures.Load(),
		IsRunning: s.running.Load(),
	}
}

// expire calls target.Expire, turning a panic into an error.
func expire(target cache.Expirer) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return target.Expire()
}
