package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/conform/internal/adapters/file"
	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/ports"
	"github.com/aretw0/conform/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunSchemaStoreContract(t, store)
}

func TestFileStore_WritesOrderedYAML(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	node := schema.Fields(
		schema.F("zeta", schema.Type(schema.KindString)),
		schema.F("alpha", schema.Required()),
	)
	require.NoError(t, store.Put(ctx, "order", node))

	data, err := os.ReadFile(filepath.Join(dir, "order.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "zeta:\n    type: String\nalpha:\n    required: true\n", string(data))

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_ReadsHandWrittenFiles(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{"n": {"type": "Integer"}}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yml"), []byte("n: {type: String}\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# schemas"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".tmp-x-123"), []byte(""), 0644))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	a, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, schema.ValidateAnySchema(map[string]any{"n": 1}, a))

	// Put replaces the hand-written spelling
	require.NoError(t, store.Put(ctx, "a", schema.Fields(schema.F("m", schema.Required()))))
	_, err = os.Stat(filepath.Join(dir, "a.json"))
	assert.True(t, os.IsNotExist(err))

	a, err = store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"m"}, a.Names())
}

func TestFileStore_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("n: {min: x}\n"), 0644))

	_, err := store.Get(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSchemaNotFound)
	assert.NotEmpty(t, schema.DecodeErrors(err))
}

func TestFileStore_MissingDirectory(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "missing"))

	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestFileStore_DefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join(".conform", "schemas"), file.New("").BasePath)
}
