package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func TestCache_TTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := New[[]string](5*time.Minute, clock.Now)

	_, ok := c.Get("clients")
	assert.False(t, ok, "cache vazio não deve retornar valor")

	c.Set("clients", []string{"a", "b"})

	value, ok := c.Get("clients")
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, value)
	assert.True(t, c.IsFresh("clients"))

	clock.Advance(4*time.Minute + 59*time.Second)
	assert.True(t, c.IsFresh("clients"))

	clock.Advance(time.Second)
	_, ok = c.Get("clients")
	assert.False(t, ok, "entrada com idade igual ao TTL é considerada expirada")
	assert.False(t, c.IsFresh("clients"))

	stale, storedAt, ok := c.Peek("clients")
	assert.True(t, ok, "Peek deve retornar a entrada expirada")
	assert.Equal(t, []string{"a", "b"}, stale)
	assert.Equal(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), storedAt)
}

func TestCache_EvictAndClear(t *testing.T) {
	c := New[int](time.Minute, nil)

	c.Set("a", 1)
	c.Set("b", 2)

	c.Evict("a")
	_, _, ok := c.Peek("a")
	assert.False(t, ok)

	value, ok := c.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 2, value)

	c.Clear()
	_, _, ok = c.Peek("b")
	assert.False(t, ok)
	assert.Equal(t, time.Minute, c.TTL())
}
