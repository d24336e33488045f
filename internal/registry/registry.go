package registry

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"gocache/internal/cache"
	"gocache/internal/logger"
)

// Registry maps cache names to caches, creating each cache on first use.
//
// A Registry is constructed explicitly and passed to whoever needs cache access;
// there is no package-level instance.
type Registry[K comparable, V any] struct {
	mu     sync.Mutex
	caches map[string]*cache.Cache[K, V]

	cacheOpts []cache.Option
	logger    *slog.Logger
}

// Option configures a Registry.
type Option func(*options)

type options struct {
	cacheOpts []cache.Option
	logger    *slog.Logger
}

// WithCacheOptions sets options applied to every cache the registry creates.
func WithCacheOptions(opts ...cache.Option) Option {
	return func(o *options) {
		o.cacheOpts = append(o.cacheOpts, opts...)
	}
}

// WithLogger configures structured logging for registry events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// New returns an empty registry.
func New[K comparable, V any](opts ...Option) *Registry[K, V] {
	o := options{logger: logger.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Registry[K, V]{
		caches:    make(map[string]*cache.Cache[K, V]),
		cacheOpts: o.cacheOpts,
		logger:    o.logger,
	}
}

// Cache returns the cache registered under name, creating it if needed.
// Concurrent first calls for the same name all receive the same instance.
func (r *Registry[K, V]) Cache(name string) *cache.Cache[K, V] {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.caches[name]; ok {
		return c
	}

	c := cache.New[K, V](name, r.cacheOpts...)
	r.caches[name] = c

	r.logger.InfoContext(context.Background(), "cache created",
		logger.Component("registry"),
		logger.CacheName(name),
		slog.String("attributes", c.Attributes().String()))

	return c
}

// Lookup returns the cache registered under name without creating it.
func (r *Registry[K, V]) Lookup(name string) (*cache.Cache[K, V], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.caches[name]
	return c, ok
}

// Drop unregisters and closes the cache registered under name.
// A later Cache call with the same name creates a fresh cache.
func (r *Registry[K, V]) Drop(name string) bool {
	r.mu.Lock()
	c, ok := r.caches[name]
	delete(r.caches, name)
	r.mu.Unlock()

	if !ok {
		return false
	}

	_ = c.Close()
	r.logger.InfoContext(context.Background(), "cache dropped",
		logger.Component("registry"),
		logger.CacheName(name))
	return true
}

// Names returns the registered cache names in sorted order.
func (r *Registry[K, V]) Names() []string {
	r.mu.Lock()
	names := make([]string, 0, len(r.caches))
	for name := range r.caches {
		names = append(names, name)
	}
	r.mu.Unlock()

	slices.Sort(names)
	return names
}

// Len returns the number of registered caches.
func (r *Registry[K, V]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.caches)
}

// Expirers returns a snapshot of every registered cache, sorted by name.
// The sweeper iterates it without holding the registry lock.
func (r *Registry[K, V]) Expirers() []cache.Expirer {
	r.mu.Lock()
	out := make([]cache.Expirer, 0, len(r.caches))
	for _, c := range r.caches {
		out = append(out, c)
	}
	r.mu.Unlock()

	slices.SortFunc(out, func(a, b cache.Expirer) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return out
}

// Stats returns the stats of every registered cache, sorted by name.
func (r *Registry[K, V]) Stats() []cache.Stats {
	r.mu.Lock()
	caches := make([]*cache.Cache[K, V], 0, len(r.caches))
	for _, c := range r.caches {
		caches = append(caches, c)
	}
	r.mu.Unlock()

	out := make([]cache.Stats, 0, len(caches))
	for _, c := range caches {
		out = append(out, c.Stats())
	}
	slices.SortFunc(out, func(a, b cache.Stats) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}
