package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/schema"
)

// Store implements ports.SchemaStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*schema.Node
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*schema.Node),
	}
}

// NewFromSchemas creates a store preloaded with the given schemas.
func NewFromSchemas(schemas map[string]*schema.Node) (*Store, error) {
	s := NewStore()
	for name, node := range schemas {
		if err := s.Put(context.Background(), name, node); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Put stores a copy of the schema.
func (s *Store) Put(ctx context.Context, name string, node *schema.Node) error {
	if err := domain.ValidateSchemaName(name); err != nil {
		return err
	}
	if node == nil {
		node = schema.Fields()
	}
	// Copy on write so later changes by the caller don't leak into the store
	copied := node.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = copied
	return nil
}

// Get retrieves a copy of the schema.
func (s *Store) Get(ctx context.Context, name string) (*schema.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	node, ok := s.data[name]
	if !ok {
		return nil, domain.ErrSchemaNotFound
	}
	return node.Clone(), nil
}

// Delete removes the schema.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns stored schema names in ascending order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
