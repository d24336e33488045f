// Package registry keeps a table of named caches and lazily creates a cache
// the first time its name is requested.
package registry
