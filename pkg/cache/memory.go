package cache

import (
	"context"
	"sync"
	"time"
)

type item[V any] struct {
	value     V
	expiresAt time.Time // zero: never
}

func (it item[V]) expired(now time.Time) bool {
	return !it.expiresAt.IsZero() && now.After(it.expiresAt)
}

// Memory is a process-local Cache.
// Expired entries are dropped lazily on access and by a periodic sweep.
// With a capacity set, inserting into a full cache evicts the entry closest to expiry.
type Memory[V any] struct {
	items      map[string]item[V]
	defaultTTL time.Duration
	sweepEvery time.Duration
	capacity   int
	now        func() time.Time
	stop       chan struct{}
	mu         sync.RWMutex
	closed     bool
}

type memoryConfig struct {
	defaultTTL time.Duration
	sweepEvery time.Duration
	capacity   int
}

// MemoryConfigOption configures NewMemory.
type MemoryConfigOption func(*memoryConfig)

// WithDefaultTTL sets the TTL used when Set receives zero. Default: 1 hour.
func WithDefaultTTL(d time.Duration) MemoryConfigOption {
	return func(c *memoryConfig) { c.defaultTTL = d }
}

// WithSweepInterval sets how often expired entries are purged. Zero disables the sweeper.
// Default: 1 minute.
func WithSweepInterval(d time.Duration) MemoryConfigOption {
	return func(c *memoryConfig) { c.sweepEvery = d }
}

// WithCapacity bounds the number of entries. Zero means unbounded.
func WithCapacity(n int) MemoryConfigOption {
	return func(c *memoryConfig) { c.capacity = n }
}

// NewMemory creates an in-memory cache. Call Close to stop the sweeper.
func NewMemory[V any](opts ...MemoryConfigOption) *Memory[V] {
	cfg := &memoryConfig{defaultTTL: time.Hour, sweepEvery: time.Minute}
	for _, opt := range opts {
		opt(cfg)
	}

	m := &Memory[V]{
		items:      make(map[string]item[V]),
		defaultTTL: cfg.defaultTTL,
		sweepEvery: cfg.sweepEvery,
		capacity:   cfg.capacity,
		now:        time.Now,
		stop:       make(chan struct{}),
	}
	if m.sweepEvery > 0 {
		go m.sweep()
	}
	return m
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.RLock()
	it, ok := m.items[key]
	m.mu.RUnlock()

	if !ok || it.expired(m.now()) {
		var zero V
		return zero, ErrNotFound
	}
	return it.value, nil
}

func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if ttl == 0 {
		ttl = m.defaultTTL
	}

	it := item[V]{value: value}
	if ttl > 0 {
		it.expiresAt = m.now().Add(ttl)
	}

	if _, exists := m.items[key]; !exists && m.capacity > 0 && len(m.items) >= m.capacity {
		m.evictLocked()
	}
	m.items[key] = it
	return nil
}

func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.items, key)
	return nil
}

func (m *Memory[V]) Has(ctx context.Context, key string) (bool, error) {
	_, err := m.Get(ctx, key)
	return err == nil, nil
}

func (m *Memory[V]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	clear(m.items)
	return nil
}

// Len returns the number of stored entries, expired ones included until swept.
func (m *Memory[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Close stops the sweeper. It is safe to call more than once.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.stop)
	}
	return nil
}

func (m *Memory[V]) sweep() {
	ticker := time.NewTicker(m.sweepEvery)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.purgeExpired()
		}
	}
}

func (m *Memory[V]) purgeExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for k, it := range m.items {
		if it.expired(now) {
			delete(m.items, k)
		}
	}
}

// evictLocked drops an expired entry if there is one, otherwise the entry
// that expires soonest. Entries without expiry go last.
func (m *Memory[V]) evictLocked() {
	now := m.now()
	var (
		victim string
		soonest time.Time
		found   bool
	)
	for k, it := range m.items {
		if it.expired(now) {
			delete(m.items, k)
			return
		}
		if it.expiresAt.IsZero() {
			if !found {
				victim, found = k, true
			}
			continue
		}
		if !found || soonest.IsZero() || it.expiresAt.Before(soonest) {
			victim, soonest, found = k, it.expiresAt, true
		}
	}
	if found {
		delete(m.items, victim)
	}
}

var _ Cache[any] = (*Memory[any])(nil)
