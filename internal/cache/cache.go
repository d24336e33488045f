package cache

import (
	"container/list"
	"reflect"
	"sync"
	"sync/atomic"
	"time"
)

// Cache is a named, concurrency-safe in-memory cache with max-life and max-idle
// expiry and LRU eviction.
//
// A map gives O(1) key lookup and a doubly-linked list keeps recency order.
// Both are only ever touched together under mu, so a key is in the map exactly
// when it is in the list, exactly once.
type Cache[K comparable, V any] struct {
	name string
	now  func() time.Time

	mu     sync.RWMutex
	attrs  Attributes
	items  map[K]*list.Element
	lru    *list.List // Front = most recently used (MRU), Back = least recently used (LRU)
	closed bool

	hits    atomic.Int64
	misses  atomic.Int64
	evicted atomic.Int64
	expired atomic.Int64
}

// Stats is a point-in-time view of cache activity.
type Stats struct {
	Name    string
	Size    int
	Hits    int64 // Successful Get calls
	Misses  int64 // Get calls that found nothing or an expired entry
	Evicted int64 // Entries removed by Evict
	Expired int64 // Entries removed because a threshold elapsed, lazily or by Expire
}

// New constructs an empty cache. Both thresholds default to NoLimit.
//
// New never returns a nil Cache.
func New[K comparable, V any](name string, opts ...Option) *Cache[K, V] {
	o := options{
		attrs: Unlimited(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Cache[K, V]{
		name:  name,
		now:   o.now,
		attrs: o.attrs,
		items: make(map[K]*list.Element),
		lru:   list.New(),
	}
}

// Name returns the name the cache was created with.
func (c *Cache[K, V]) Name() string {
	return c.name
}

// Configure replaces the default thresholds for entries created by later Put calls.
// Entries already stored keep the thresholds they were created with.
func (c *Cache[K, V]) Configure(attrs Attributes) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attrs = attrs
}

// Attributes returns the current default thresholds.
func (c *Cache[K, V]) Attributes() Attributes {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.attrs
}

// Get returns a copy of the entry stored under key.
//
// A live entry has its access time refreshed and moves to the MRU position.
// An expired entry is removed on the spot and reported as missing.
func (c *Cache[K, V]) Get(key K) (Entry[K, V], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok || c.closed {
		c.misses.Add(1)
		return Entry[K, V]{}, false
	}

	now := c.now()
	e := el.Value.(*Entry[K, V])
	if e.Expired(now) {
		c.deleteLocked(key)
		c.expired.Add(1)
		c.misses.Add(1)
		return Entry[K, V]{}, false
	}

	e.touch(now)
	c.lru.MoveToFront(el)
	c.hits.Add(1)
	return *e, true
}

// Put stores value under key using the cache's current default thresholds.
//
// A missing key (nil, or an empty string) and nil values are rejected with an
// error matching ErrInvalidArgument. Other zero values, such as 0 or false, are valid keys.
func (c *Cache[K, V]) Put(key K, value V) error {
	if missingKey(key) {
		return ErrInvalidKey
	}
	if isNil(value) {
		return ErrInvalidValue
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	c.updateLocked(NewEntry(c.name, key, value, c.attrs, c.now()))
	return nil
}

// Update stores e, replacing any entry with the same key, and marks it as just accessed.
// Build e with NewEntry: a zero Entry has zero thresholds and expires on the next access.
// Entries whose key Put would reject are rejected here too.
func (c *Cache[K, V]) Update(e Entry[K, V]) error {
	if missingKey(e.key) {
		return ErrInvalidKey
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	c.updateLocked(e)
	return nil
}

// Remove deletes key and reports whether it was present.
func (c *Cache[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deleteLocked(key)
}

// RemoveAll drops every entry.
func (c *Cache[K, V]) RemoveAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
}

// Evict removes up to n least recently used entries and returns how many it removed.
// Asking for more than the cache holds simply empties it.
func (c *Cache[K, V]) Evict(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	freed := 0
	for freed < n {
		el := c.lru.Back()
		if el == nil {
			break
		}
		c.deleteLocked(el.Value.(*Entry[K, V]).key)
		freed++
	}

	c.evicted.Add(int64(freed))
	return freed
}

// Expire removes every entry that is expired and returns how many it removed.
//
// The sweep holds the lock for its whole pass and reads the clock once after
// acquiring it. Any access that finished before the sweep started is therefore
// already reflected in the entry, and any later access sees the swept state.
func (c *Cache[K, V]) Expire() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, ErrClosed
	}

	removed := c.deleteExpiredLocked(c.now())
	c.expired.Add(int64(removed))
	return removed, nil
}

// Size returns the number of stored entries.
//
// Note: Size includes entries that have expired but haven't been cleaned up yet.
// Get removes them when accessed; Expire removes them all at once.
func (c *Cache[K, V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Keys returns keys in MRU -> LRU order.
func (c *Cache[K, V]) Keys() []K {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]K, 0, c.lru.Len())
	for el := c.lru.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(*Entry[K, V]).key)
	}
	return out
}

// Stats returns counters accumulated since the cache was created.
func (c *Cache[K, V]) Stats() Stats {
	return Stats{
		Name:    c.name,
		Size:    c.Size(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Evicted: c.evicted.Load(),
		Expired: c.expired.Load(),
	}
}

// Close drops all entries and rejects further writes.
//
// Close is safe to call multiple times.
func (c *Cache[K, V]) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.clearLocked()
	return nil
}

func (c *Cache[K, V]) updateLocked(e Entry[K, V]) {
	e.touch(c.now())

	if el, ok := c.items[e.key]; ok {
		*el.Value.(*Entry[K, V]) = e
		c.makeFirstLocked(el)
		return
	}

	c.items[e.key] = c.lru.PushFront(&e)
}

// makeFirstLocked moves el to the MRU position. It is a no-op when el already is the head.
func (c *Cache[K, V]) makeFirstLocked(el *list.Element) {
	if c.lru.Front() == el {
		return
	}
	c.lru.MoveToFront(el)
}

func (c *Cache[K, V]) deleteLocked(key K) bool {
	el, ok := c.items[key]
	if !ok {
		return false
	}
	delete(c.items, key)
	c.lru.Remove(el)
	return true
}

// deleteExpiredLocked removes all expired keys.
//
// This is O(n) and intentionally simple. More complex designs can track expirations
// in a min-heap or timing wheel, but that trades simplicity for performance.
func (c *Cache[K, V]) deleteExpiredLocked(now time.Time) int {
	removed := 0
	for key, el := range c.items {
		if el.Value.(*Entry[K, V]).Expired(now) {
			delete(c.items, key)
			c.lru.Remove(el)
			removed++
		}
	}
	return removed
}

func (c *Cache[K, V]) clearLocked() {
	clear(c.items)
	c.lru.Init()
}

// missingKey reports whether key stands for "no key": nil for nillable kinds,
// the empty string for string kinds.
func missingKey(key any) bool {
	if isNil(key) {
		return true
	}
	rv := reflect.ValueOf(key)
	return rv.Kind() == reflect.String && rv.Len() == 0
}

// isNil reports whether v is a nil interface or a nil value of a nillable kind.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	}
	return false
}
