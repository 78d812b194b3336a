package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/conform/pkg/adapters/memory"
	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/ports"
	"github.com/aretw0/conform/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunSchemaStoreContract(t, store)
}

func TestNewFromSchemas(t *testing.T) {
	store, err := memory.NewFromSchemas(map[string]*schema.Node{
		"cook": schema.Fields(schema.F("name", schema.Required())),
	})
	require.NoError(t, err)

	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"cook"}, names)

	_, err = memory.NewFromSchemas(map[string]*schema.Node{"../x": nil})
	assert.ErrorIs(t, err, domain.ErrInvalidSchemaName)
}
