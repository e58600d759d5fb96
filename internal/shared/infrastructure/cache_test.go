package infrastructure

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCache_SetGet(t *testing.T) {
	cache := NewTTLCache[int](time.Minute)
	cache.Set("orders", 42)

	value, ok := cache.Get("orders")
	require.True(t, ok)
	assert.Equal(t, 42, value)

	_, ok = cache.Get("sellers")
	assert.False(t, ok)
}

func TestTTLCache_Expiration(t *testing.T) {
	now := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewTTLCache[string](time.Minute)
	cache.now = func() time.Time { return now }

	cache.Set("key", "value")
	now = now.Add(30 * time.Second)
	_, ok := cache.Get("key")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok = cache.Get("key")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestTTLCache_DeleteAndClear(t *testing.T) {
	cache := NewTTLCache[int](time.Minute)
	cache.Set("a", 1)
	cache.Set("b", 2)

	cache.Delete("a")
	_, ok := cache.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, cache.Len())

	cache.Clear()
	assert.Equal(t, 0, cache.Len())
}

func TestCacheKeyBuilder(t *testing.T) {
	key := NewCacheKeyBuilder().Add("training").Add("orders").AddBool(true).Build()
	assert.Equal(t, "training:orders:true", key)
}

// BenchmarkTTLCache_Get_HighContention teste Get avec haute contention
func BenchmarkTTLCache_Get_HighContention(b *testing.B) {
	cache := NewTTLCache[string](5 * time.Minute)
	cache.Set("shared_key", "shared_value")

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = cache.Get("shared_key")
		}
	})
}

// BenchmarkTTLCache_Set teste Set sans contention
func BenchmarkTTLCache_Set(b *testing.B) {
	cache := NewTTLCache[string](5 * time.Minute)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		cache.Set(fmt.Sprintf("key%d", i), "value")
	}
}
