package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"gocache/internal/cache"
	"gocache/internal/config"
	"gocache/internal/logger"
	"gocache/internal/registry"
	"gocache/internal/sweeper"
)

func main() {
	// Signal-aware context is the root of ownership for long-lived background work.
	// When SIGINT/SIGTERM arrives, ctx is canceled and we initiate a clean shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg config.App
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
	)

	reg := registry.New[string, string](
		registry.WithLogger(log),
		registry.WithCacheOptions(cache.WithAttributes(cache.Attributes{
			MaxLife: cfg.Cache.MaxLife,
			MaxIdle: cfg.Cache.MaxIdle,
		})),
	)

	sw, err := sweeper.New(reg,
		sweeper.WithInterval(cfg.Cache.SweepInterval),
		sweeper.WithShutdownTimeout(cfg.Cache.ShutdownTimeout),
		sweeper.WithLogger(log),
	)
	if err != nil {
		log.Error("Failed to create sweeper", logger.Component("sweeper"), logger.Error(err))
		os.Exit(1)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(sw.Run(ctx))
	eg.Go(func() error {
		return demo(ctx, reg, sw)
	})

	if err := eg.Wait(); err != nil {
		log.Error("Demo failed", logger.Error(err))
		os.Exit(1)
	}

	for _, s := range reg.Stats() {
		log.Info("cache stats",
			logger.CacheName(s.Name),
			logger.Count("size", s.Size),
			logger.Count("hits", int(s.Hits)),
			logger.Count("misses", int(s.Misses)),
			logger.Count("expired", int(s.Expired)),
			logger.Count("evicted", int(s.Evicted)))
	}
	log.Info("Application stopped")
}

// demo walks through LRU promotion, eviction and expiry on two named caches,
// then waits for a signal.
func demo(ctx context.Context, reg *registry.Registry[string, string], sw *sweeper.Sweeper) error {
	// -------------------------------------------------------------------
	// 1) LRU promotion and eviction
	// -------------------------------------------------------------------
	lru := reg.Cache("demo.lru")
	for _, k := range []string{"a", "b", "c"} {
		if err := lru.Put(k, k+"-value"); err != nil {
			return fmt.Errorf("put %s: %w", k, err)
		}
	}

	// Touch "a" so "b" becomes least-recently-used.
	if e, ok := lru.Get("a"); ok {
		fmt.Printf("GET a = %q (touches a -> MRU)\n", e.Value())
	}
	fmt.Printf("keys (MRU->LRU): %v\n", lru.Keys())
	fmt.Printf("evicted %d, keys now: %v\n", lru.Evict(1), lru.Keys())

	// -------------------------------------------------------------------
	// 2) Max-life and max-idle expiry
	// -------------------------------------------------------------------
	// Entries are never read after insertion; only the sweep removes them.
	short := reg.Cache("demo.short")
	short.Configure(cache.Attributes{MaxLife: time.Second, MaxIdle: cache.NoLimit})
	for i := range 5 {
		if err := short.Put(fmt.Sprintf("k%d", i), "short-lived"); err != nil {
			return err
		}
	}
	fmt.Printf("short-lived entries: %d\n", short.Size())

	wait := time.NewTimer(1500 * time.Millisecond)
	defer wait.Stop()
	select {
	case <-ctx.Done():
		return nil
	case <-wait.C:
	}

	report := sw.SweepOnce(ctx)
	fmt.Printf("sweep %s expired %d entries across %d caches; short-lived left: %d\n",
		report.ID, report.Expired, report.Caches, short.Size())

	fmt.Println("Done. Press Ctrl+C to exit.")
	<-ctx.Done()
	return nil
}
