package infrastructure

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// cacheEntry représente une entrée de cache avec expiration
type cacheEntry[V any] struct {
	value      V
	expiration time.Time
}

func (e cacheEntry[V]) expiredAt(now time.Time) bool {
	return now.After(e.expiration)
}

// Cache interface pour l'abstraction du cache
type Cache[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V)
	Delete(key string)
	Clear()
}

// TTLCache cache en mémoire, chaque entrée expire après ttl.
// Les entrées expirées sont supprimées à la lecture.
type TTLCache[V any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry[V]
	now     func() time.Time
}

// NewTTLCache crée un nouveau cache en mémoire
func NewTTLCache[V any](ttl time.Duration) *TTLCache[V] {
	return &TTLCache[V]{
		ttl:     ttl,
		entries: make(map[string]cacheEntry[V]),
		now:     time.Now,
	}
}

// Get récupère une valeur non expirée
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	var zero V
	if !exists {
		return zero, false
	}
	if entry.expiredAt(c.now()) {
		c.Delete(key)
		return zero, false
	}
	return entry.value, true
}

// Set ajoute ou remplace une valeur
func (c *TTLCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry[V]{
		value:      value,
		expiration: c.now().Add(c.ttl),
	}
}

// Delete supprime une entrée
func (c *TTLCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Clear vide complètement le cache
func (c *TTLCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry[V])
}

// Len retourne le nombre d'entrées, expirées comprises
func (c *TTLCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// CacheKeyBuilder aide à construire des clés de cache cohérentes
type CacheKeyBuilder struct {
	parts []string
}

// NewCacheKeyBuilder crée un nouveau builder de clé
func NewCacheKeyBuilder() *CacheKeyBuilder {
	return &CacheKeyBuilder{
		parts: make([]string, 0, 4),
	}
}

// Add ajoute une partie à la clé
func (b *CacheKeyBuilder) Add(part string) *CacheKeyBuilder {
	b.parts = append(b.parts, part)
	return b
}

// AddBool ajoute un booléen à la clé
func (b *CacheKeyBuilder) AddBool(value bool) *CacheKeyBuilder {
	b.parts = append(b.parts, strconv.FormatBool(value))
	return b
}

// Build construit la clé finale
func (b *CacheKeyBuilder) Build() string {
	return strings.Join(b.parts, ":")
}
