package config

import "time"

// App is the configuration of the gocache binary.
//
// CACHE_MAX_LIFE and CACHE_MAX_IDLE are Go durations; a negative value such as
// "-1s" disables the threshold.
type App struct {
	Name     string `env:"APP_NAME" envDefault:"gocache"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Cache Cache `envPrefix:"CACHE_"`
}

// Cache holds the defaults applied to every cache the registry creates and the
// sweeper schedule.
type Cache struct {
	MaxLife         time.Duration `env:"MAX_LIFE" envDefault:"-1s"`
	MaxIdle         time.Duration `env:"MAX_IDLE" envDefault:"-1s"`
	SweepInterval   time.Duration `env:"SWEEP_INTERVAL" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}
