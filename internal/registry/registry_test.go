package registry_test

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocache/internal/cache"
	"gocache/internal/logger"
	"gocache/internal/registry"
)

func TestCache_SameInstancePerName(t *testing.T) {
	t.Parallel()

	reg := registry.New[string, string]()

	a := reg.Cache("a")
	require.NotNil(t, a)
	assert.Same(t, a, reg.Cache("a"))
	assert.NotSame(t, a, reg.Cache("b"))
	assert.Equal(t, "a", a.Name())
	assert.Equal(t, 2, reg.Len())
}

func TestCache_ConcurrentFirstAccess(t *testing.T) {
	t.Parallel()

	reg := registry.New[string, int]()

	const workers = 32
	got := make([]*cache.Cache[string, int], workers)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			got[i] = reg.Cache("shared")
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 1; i < workers; i++ {
		assert.Same(t, got[0], got[i])
	}
	assert.Equal(t, 1, reg.Len())
}

func TestCache_AppliesCacheOptions(t *testing.T) {
	t.Parallel()

	attrs := cache.Attributes{MaxLife: time.Minute, MaxIdle: 10 * time.Second}
	reg := registry.New[string, string](registry.WithCacheOptions(cache.WithAttributes(attrs)))

	assert.Equal(t, attrs, reg.Cache("configured").Attributes())
}

func TestCache_IndependentState(t *testing.T) {
	t.Parallel()

	reg := registry.New[string, string]()
	require.NoError(t, reg.Cache("a").Put("k", "from a"))

	_, ok := reg.Cache("b").Get("k")
	assert.False(t, ok)

	e, ok := reg.Cache("a").Get("k")
	require.True(t, ok)
	assert.Equal(t, "from a", e.Value())
	assert.Equal(t, "a", e.CacheName())
}

func TestLookup(t *testing.T) {
	t.Parallel()

	reg := registry.New[string, string]()
	_, ok := reg.Lookup("missing")
	assert.False(t, ok)
	assert.Equal(t, 0, reg.Len(), "Lookup must not create")

	c := reg.Cache("present")
	found, ok := reg.Lookup("present")
	require.True(t, ok)
	assert.Same(t, c, found)
}

func TestDrop(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	reg := registry.New[string, string](registry.WithLogger(logger.New(logger.WithOutput(&buf))))

	old := reg.Cache("temp")
	require.NoError(t, old.Put("k", "v"))

	assert.True(t, reg.Drop("temp"))
	assert.False(t, reg.Drop("temp"))
	assert.ErrorIs(t, old.Put("k", "v"), cache.ErrClosed)

	fresh := reg.Cache("temp")
	assert.NotSame(t, old, fresh)
	assert.Equal(t, 0, fresh.Size())

	assert.Contains(t, buf.String(), "cache created")
	assert.Contains(t, buf.String(), "cache dropped")
}

func TestNamesExpirersAndStats(t *testing.T) {
	t.Parallel()

	reg := registry.New[string, string]()
	for _, name := range []string{"c", "a", "b"} {
		require.NoError(t, reg.Cache(name).Put("k", "v"))
	}

	assert.Equal(t, []string{"a", "b", "c"}, reg.Names())

	expirers := reg.Expirers()
	require.Len(t, expirers, 3)
	for i, name := range []string{"a", "b", "c"} {
		assert.Equal(t, name, expirers[i].Name())
	}

	stats := reg.Stats()
	require.Len(t, stats, 3)
	assert.Equal(t, "a", stats[0].Name)
	assert.Equal(t, 1, stats[0].Size)
}
