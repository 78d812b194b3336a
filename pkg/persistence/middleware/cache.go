package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/conform/pkg/ports"
	"github.com/aretw0/conform/pkg/schema"
)

type cacheEntry struct {
	node    *schema.Node
	expires time.Time
}

type cacheMiddleware struct {
	next ports.SchemaStore
	ttl  time.Duration
	now  func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewCacheMiddleware creates a read-through cache for Get.
// Entries live for ttl; Put and Delete through the middleware drop the entry.
// Writes made to the underlying store by other processes are seen once the
// entry expires.
func NewCacheMiddleware(ttl time.Duration) Middleware {
	return func(next ports.SchemaStore) ports.SchemaStore {
		return &cacheMiddleware{
			next:    next,
			ttl:     ttl,
			now:     time.Now,
			entries: make(map[string]cacheEntry),
		}
	}
}

func (m *cacheMiddleware) Put(ctx context.Context, name string, node *schema.Node) error {
	err := m.next.Put(ctx, name, node)
	m.forget(name)
	return err
}

func (m *cacheMiddleware) Get(ctx context.Context, name string) (*schema.Node, error) {
	m.mu.RLock()
	entry, ok := m.entries[name]
	m.mu.RUnlock()
	if ok && m.now().Before(entry.expires) {
		return entry.node.Clone(), nil
	}

	node, err := m.next.Get(ctx, name)
	if err != nil {
		// Misses are not cached so a schema stored elsewhere shows up at once.
		m.forget(name)
		return nil, err
	}

	m.mu.Lock()
	m.entries[name] = cacheEntry{node: node.Clone(), expires: m.now().Add(m.ttl)}
	m.mu.Unlock()
	return node, nil
}

func (m *cacheMiddleware) Delete(ctx context.Context, name string) error {
	err := m.next.Delete(ctx, name)
	m.forget(name)
	return err
}

func (m *cacheMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *cacheMiddleware) forget(name string) {
	m.mu.Lock()
	delete(m.entries, name)
	m.mu.Unlock()
}
