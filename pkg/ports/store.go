package ports

import (
	"context"

	"github.com/aretw0/conform/pkg/schema"
)

// SchemaStore defines the interface for persisting named schemas.
// It lets the HTTP, MCP and CLI surfaces validate against a schema by name.
type SchemaStore interface {
	// Put stores node under name, replacing any previous schema.
	// A nil node is stored as an empty schema.
	// Returns domain.ErrInvalidSchemaName if name is not a valid schema name.
	Put(ctx context.Context, name string, node *schema.Node) error

	// Get retrieves the schema stored under name.
	// Returns domain.ErrSchemaNotFound if the schema does not exist.
	Get(ctx context.Context, name string) (*schema.Node, error)

	// Delete removes the schema stored under name. Deleting a missing schema is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored schemas in ascending order.
	List(ctx context.Context) ([]string, error)
}
