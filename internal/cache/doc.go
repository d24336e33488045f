// Package cache implements a single named, in-memory key–value cache.
//
// Goals for this package:
//   - Keep the core data structures explicit (map index + doubly-linked list)
//   - Provide O(1) Get/Put/Remove and LRU promotion via map index + list pointers
//   - Bound every entry by two independent timers, max life and max idle
//   - Expire lazily on Get and eagerly on Expire, which a periodic driver calls
//   - Be concurrency-safe with one lock per cache covering both structures
package cache
