package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTTLCache_SetGet(t *testing.T) {
	c := NewTTLCache[string](4, time.Minute)

	c.Set("a", "甲")
	got, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, "甲", got)

	_, ok = c.Get("missing")
	require.False(t, ok)
}

func TestTTLCache_Expiry(t *testing.T) {
	c := NewTTLCache[int](4, 10*time.Millisecond)

	c.Set("n", 1)
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get("n")
	require.False(t, ok)
	// 过期读取顺带清掉条目
	require.Equal(t, 0, c.Len())
}

func TestTTLCache_Eviction(t *testing.T) {
	c := NewTTLCache[int](2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	require.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	require.False(t, ok)
}

func TestTTLCache_DeleteClear(t *testing.T) {
	c := NewTTLCache[int](4, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	_, ok := c.Get("a")
	require.False(t, ok)

	c.Clear()
	require.Equal(t, 0, c.Len())
}

func TestGlobalCache(t *testing.T) {
	InitCache()

	CacheSet("k", []int{1, 2}, time.Minute)
	v, ok := CacheGet("k")
	require.True(t, ok)
	require.Equal(t, []int{1, 2}, v)

	CacheDelete("k")
	_, ok = CacheGet("k")
	require.False(t, ok)

	CacheSet("k2", 1, time.Minute)
	CacheClear()
	_, ok = CacheGet("k2")
	require.False(t, ok)
}
