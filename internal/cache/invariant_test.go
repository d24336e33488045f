package cache

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// requireParity checks that the index and the recency list hold the same keys,
// each key exactly once.
func requireParity[K comparable, V any](t *testing.T, c *Cache[K, V]) {
	t.Helper()

	c.mu.RLock()
	defer c.mu.RUnlock()

	require.Equal(t, len(c.items), c.lru.Len(), "index and recency list sizes differ")

	seen := make(map[K]struct{}, c.lru.Len())
	for el := c.lru.Front(); el != nil; el = el.Next() {
		key := el.Value.(*Entry[K, V]).key
		_, dup := seen[key]
		require.False(t, dup, "key %v appears twice in recency list", key)
		seen[key] = struct{}{}

		indexed, ok := c.items[key]
		require.True(t, ok, "key %v in recency list but not in index", key)
		require.Same(t, el, indexed, "index points at a different list node for %v", key)
	}
}

func TestIndexRecencyParity(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New[int, int]("parity",
		WithClock(func() time.Time { return now }),
		WithAttributes(Attributes{MaxLife: 5 * time.Second, MaxIdle: 2 * time.Second}),
	)

	rng := rand.New(rand.NewPCG(1, 2))
	for i := range 5000 {
		key := rng.IntN(50) + 1
		switch rng.IntN(8) {
		case 0, 1, 2:
			require.NoError(t, c.Put(key, i))
		case 3:
			c.Get(key)
		case 4:
			c.Remove(key)
		case 5:
			c.Evict(rng.IntN(4))
		case 6:
			now = now.Add(time.Duration(rng.IntN(1500)) * time.Millisecond)
			_, err := c.Expire()
			require.NoError(t, err)
		case 7:
			if rng.IntN(20) == 0 {
				c.RemoveAll()
			}
		}
		requireParity(t, c)
	}
}

func TestEntryExpired(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		attrs    Attributes
		accessed time.Duration
		at       time.Duration
		want     bool
	}{
		{name: "no limits", attrs: Unlimited(), at: 24 * time.Hour, want: false},
		{name: "within max life", attrs: Attributes{MaxLife: 2 * time.Second, MaxIdle: NoLimit}, at: 2 * time.Second, want: false},
		{name: "past max life", attrs: Attributes{MaxLife: 2 * time.Second, MaxIdle: NoLimit}, at: 3 * time.Second, want: true},
		{name: "past max life despite access", attrs: Attributes{MaxLife: 2 * time.Second, MaxIdle: NoLimit}, accessed: 3 * time.Second, at: 3 * time.Second, want: true},
		{name: "idle", attrs: Attributes{MaxLife: NoLimit, MaxIdle: 2 * time.Second}, at: 3 * time.Second, want: true},
		{name: "recently accessed", attrs: Attributes{MaxLife: NoLimit, MaxIdle: 2 * time.Second}, accessed: 2 * time.Second, at: 3 * time.Second, want: false},
		{name: "zero max life expires after any delay", attrs: Attributes{MaxLife: 0, MaxIdle: NoLimit}, at: time.Nanosecond, want: true},
		{name: "any negative means no limit", attrs: Attributes{MaxLife: -5 * time.Second, MaxIdle: -time.Hour}, at: 24 * time.Hour, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := NewEntry("c", "k", "v", tt.attrs, created)
			e.touch(created.Add(tt.accessed))
			require.Equal(t, tt.want, e.Expired(created.Add(tt.at)))
		})
	}
}

func TestEntryTouchNeverPrecedesCreation(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e := NewEntry("c", "k", "v", Unlimited(), created)

	e.touch(created.Add(-time.Minute))
	require.Equal(t, created, e.LastAccessedAt())

	e.touch(created.Add(time.Minute))
	require.Equal(t, created.Add(time.Minute), e.LastAccessedAt())
}

func TestEntryTimeToLive(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	e := NewEntry("c", "k", "v", Attributes{MaxLife: 10 * time.Second, MaxIdle: NoLimit}, created)
	require.Equal(t, 7*time.Second, e.TimeToLive(created.Add(3*time.Second)))
	require.Equal(t, time.Duration(0), e.TimeToLive(created.Add(time.Minute)))

	forever := NewEntry("c", "k", "v", Unlimited(), created)
	require.Equal(t, NoLimit, forever.TimeToLive(created.Add(time.Hour)))
}
