package cache

import (
	"fmt"
	"time"
)

// NoLimit disables a max-life or max-idle threshold. Any negative duration
// is treated the same way.
const NoLimit time.Duration = -1

// Attributes are the default thresholds a cache stamps onto entries created by Put.
type Attributes struct {
	MaxLife time.Duration
	MaxIdle time.Duration
}

// Unlimited returns attributes with both thresholds disabled.
func Unlimited() Attributes {
	return Attributes{MaxLife: NoLimit, MaxIdle: NoLimit}
}

func (a Attributes) String() string {
	return fmt.Sprintf("max_life=%s max_idle=%s", limitString(a.MaxLife), limitString(a.MaxIdle))
}

// Entry is a cached value together with the timestamps used to decide its expiry.
//
// Key, value and thresholds are fixed at construction. Only the last access time
// moves, and only while the owning cache holds its lock. Entries handed out by a
// Cache are copies, so callers may read them freely.
type Entry[K comparable, V any] struct {
	cacheName      string
	key            K
	value          V
	maxLife        time.Duration
	maxIdle        time.Duration
	createdAt      time.Time
	lastAccessedAt time.Time
}

// NewEntry builds an entry owned by cacheName, created and last accessed at now.
func NewEntry[K comparable, V any](cacheName string, key K, value V, attrs Attributes, now time.Time) Entry[K, V] {
	return Entry[K, V]{
		cacheName:      cacheName,
		key:            key,
		value:          value,
		maxLife:        attrs.MaxLife,
		maxIdle:        attrs.MaxIdle,
		createdAt:      now,
		lastAccessedAt: now,
	}
}

func (e Entry[K, V]) CacheName() string         { return e.cacheName }
func (e Entry[K, V]) Key() K                    { return e.key }
func (e Entry[K, V]) Value() V                  { return e.value }
func (e Entry[K, V]) MaxLife() time.Duration    { return e.maxLife }
func (e Entry[K, V]) MaxIdle() time.Duration    { return e.maxIdle }
func (e Entry[K, V]) CreatedAt() time.Time      { return e.createdAt }
func (e Entry[K, V]) LastAccessedAt() time.Time { return e.lastAccessedAt }

// Expired reports whether either enabled threshold has elapsed at now.
func (e Entry[K, V]) Expired(now time.Time) bool {
	if e.maxLife >= 0 && now.Sub(e.createdAt) > e.maxLife {
		return true
	}
	if e.maxIdle >= 0 && now.Sub(e.lastAccessedAt) > e.maxIdle {
		return true
	}
	return false
}

// TimeToLive returns how much absolute lifetime the entry has left at now.
// It returns NoLimit when max life is disabled and zero once the entry is past it.
func (e Entry[K, V]) TimeToLive(now time.Time) time.Duration {
	if e.maxLife < 0 {
		return NoLimit
	}
	left := e.createdAt.Add(e.maxLife).Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

func (e Entry[K, V]) String() string {
	return fmt.Sprintf("[Entry cache=%q key=%v value=%v max_life=%s max_idle=%s created=%s accessed=%s]",
		e.cacheName, e.key, e.value,
		limitString(e.maxLife), limitString(e.maxIdle),
		e.createdAt.Format(time.RFC3339Nano), e.lastAccessedAt.Format(time.RFC3339Nano))
}

// touch records an access. The timestamp never moves before createdAt.
func (e *Entry[K, V]) touch(now time.Time) {
	if now.Before(e.createdAt) {
		now = e.createdAt
	}
	e.lastAccessedAt = now
}

func limitString(d time.Duration) string {
	if d < 0 {
		return "none"
	}
	return d.String()
}
