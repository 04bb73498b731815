package cache

import (
	"sync"
	"time"
)

// Clock permite injetar o horário atual nos testes
type Clock func() time.Time

type entry[T any] struct {
	value    T
	storedAt time.Time
}

// Cache guarda valores por chave com um TTL único para todas as entradas
type Cache[T any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     Clock
	entries map[string]entry[T]
}

// New cria um cache com o TTL informado. Um clock nil usa time.Now.
func New[T any](ttl time.Duration, clock Clock) *Cache[T] {
	if clock == nil {
		clock = time.Now
	}

	return &Cache[T]{
		ttl:     ttl,
		now:     clock,
		entries: make(map[string]entry[T]),
	}
}

// Get retorna o valor somente se ainda estiver dentro do TTL
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || !c.fresh(e) {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Peek retorna o valor mesmo que expirado, junto com o momento em que foi gravado
func (c *Cache[T]) Peek(key string) (T, time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		var zero T
		return zero, time.Time{}, false
	}
	return e.value, e.storedAt, true
}

func (c *Cache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[T]{value: value, storedAt: c.now()}
}

func (c *Cache[T]) IsFresh(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	return ok && c.fresh(e)
}

func (c *Cache[T]) Evict(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry[T])
}

func (c *Cache[T]) TTL() time.Duration {
	return c.ttl
}

func (c *Cache[T]) fresh(e entry[T]) bool {
	return c.now().Sub(e.storedAt) < c.ttl
}
