package middleware

import (
	"context"

	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/ports"
	"github.com/aretw0/conform/pkg/schema"
)

type readOnlyMiddleware struct {
	next ports.SchemaStore
}

// NewReadOnlyMiddleware creates a middleware that rejects Put and Delete with
// domain.ErrReadOnlyStore. Reads pass through.
func NewReadOnlyMiddleware() Middleware {
	return func(next ports.SchemaStore) ports.SchemaStore {
		return &readOnlyMiddleware{next: next}
	}
}

func (m *readOnlyMiddleware) Put(ctx context.Context, name string, node *schema.Node) error {
	return domain.ErrReadOnlyStore
}

func (m *readOnlyMiddleware) Get(ctx context.Context, name string) (*schema.Node, error) {
	return m.next.Get(ctx, name)
}

func (m *readOnlyMiddleware) Delete(ctx context.Context, name string) error {
	return domain.ErrReadOnlyStore
}

func (m *readOnlyMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
