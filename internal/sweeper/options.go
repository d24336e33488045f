package sweeper

import (
	"log/slog"
	"time"
)

// Option is a functional option for configuring a sweeper.
type Option func(*options)

type options struct {
	interval        time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger
}

// WithInterval configures how often a sweep pass runs. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithShutdownTimeout configures how long Stop waits for an in-flight pass.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.shutdownTimeout = d
		}
	}
}

// WithLogger configures structured logging for sweep passes.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
