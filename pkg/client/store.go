package client

import (
	"context"

	"github.com/aretw0/conform/pkg/ports"
	"github.com/aretw0/conform/pkg/schema"
)

// Store exposes the server's schemas as a ports.SchemaStore.
type Store struct {
	client *Client
}

var _ ports.SchemaStore = (*Store)(nil)

// Store returns a SchemaStore backed by the server.
func (c *Client) Store() *Store {
	return &Store{client: c}
}

func (s *Store) Put(ctx context.Context, name string, node *schema.Node) error {
	return s.client.PutSchema(ctx, name, node)
}

func (s *Store) Get(ctx context.Context, name string) (*schema.Node, error) {
	return s.client.GetSchema(ctx, name)
}

func (s *Store) Delete(ctx context.Context, name string) error {
	return s.client.DeleteSchema(ctx, name)
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	names, err := s.client.ListSchemas(ctx)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}
