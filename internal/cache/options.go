package cache

import "time"

// Option configures a Cache at construction.
type Option func(*options)

type options struct {
	attrs Attributes
	now   func() time.Time
}

// WithAttributes sets the default thresholds for entries created by Put.
func WithAttributes(attrs Attributes) Option {
	return func(o *options) {
		o.attrs = attrs
	}
}

// WithMaxLife sets the default absolute TTL. Pass NoLimit to disable it.
func WithMaxLife(d time.Duration) Option {
	return func(o *options) {
		o.attrs.MaxLife = d
	}
}

// WithMaxIdle sets the default idle timeout. Pass NoLimit to disable it.
func WithMaxIdle(d time.Duration) Option {
	return func(o *options) {
		o.attrs.MaxIdle = d
	}
}

// WithClock replaces time.Now as the source of every timestamp the cache takes.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
