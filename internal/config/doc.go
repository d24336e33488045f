// Package config loads environment configuration with caching using Go generics.
//
// A .env file is loaded once on first use, then github.com/caarlos0/env parses
// the environment into the given struct. Each configuration type is parsed once
// per process:
//
//	var cfg config.App
//	config.MustLoad(&cfg)
package config
