// Package logger builds slog loggers for the cache binary and provides
// attribute helpers for the fields the cache packages log.
//
//	log := logger.New(logger.WithDevelopment("gocache"))
//	log.Info("sweep finished",
//		logger.Component("sweeper"),
//		logger.CacheName("sessions"),
//		logger.Count("expired", n),
//	)
package logger
