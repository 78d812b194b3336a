package ports

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSchemaStoreContract runs a suite of tests to verify that a SchemaStore implementation
// adheres to the defined interface contract.
func RunSchemaStoreContract(t *testing.T, store SchemaStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405")

	profile := schema.Fields(
		schema.F("name", schema.Type(schema.KindString), schema.Required()),
		schema.F("stages", schema.Type(schema.KindArray), schema.MinSize(1), schema.Template(schema.Fields(
			schema.F("time_sec", schema.Max(1000), schema.Type(schema.KindInteger)),
			schema.F("power", schema.From(0, 50, 100)),
		))),
		schema.F("notes", schema.Unknown("pattern", "^[a-z]*$")),
	)

	t.Run("Put and Get", func(t *testing.T) {
		// 1. Put
		err := store.Put(ctx, name, profile)
		require.NoError(t, err, "Put should not return error")

		// 2. Get
		loaded, err := store.Get(ctx, name)
		require.NoError(t, err, "Get should not return error")

		// Field and rule order must survive the round trip.
		want, _ := json.Marshal(profile)
		got, _ := json.Marshal(loaded)
		assert.JSONEq(t, string(want), string(got))
		assert.Equal(t, profile.Names(), loaded.Names())

		stages, ok := loaded.Field("stages")
		require.True(t, ok)
		tmpl, ok := stages.Get(schema.RuleTemplate)
		require.True(t, ok)
		inner := tmpl.Arg.(schema.TemplateArg).Node
		assert.Equal(t, []string{"time_sec", "power"}, inner.Names())
		timeSec, _ := inner.Field("time_sec")
		require.Len(t, timeSec, 2)
		assert.Equal(t, "max", timeSec[0].Key)

		// The loaded schema still validates.
		assert.True(t, schema.ValidateAnySchema(map[string]any{
			"name":   "rice",
			"stages": []any{map[string]any{"time_sec": 10, "power": 50}},
		}, loaded))
		assert.False(t, schema.ValidateAnySchema(map[string]any{
			"name":   "rice",
			"stages": []any{map[string]any{"time_sec": 10, "power": 55}},
		}, loaded))
	})

	t.Run("Put Overwrites", func(t *testing.T) {
		other := name + "-overwrite"
		defer func() { _ = store.Delete(ctx, other) }()

		require.NoError(t, store.Put(ctx, other, schema.Fields(schema.F("a", schema.Required()))))
		require.NoError(t, store.Put(ctx, other, schema.Fields(schema.F("b", schema.Required()))))

		loaded, err := store.Get(ctx, other)
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, loaded.Names())
	})

	t.Run("Put Nil Schema", func(t *testing.T) {
		empty := name + "-empty"
		defer func() { _ = store.Delete(ctx, empty) }()

		require.NoError(t, store.Put(ctx, empty, nil))
		loaded, err := store.Get(ctx, empty)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, 0, loaded.Len())
	})

	t.Run("Invalid Name", func(t *testing.T) {
		for _, bad := range []string{"", "../escape", "a/b", ".hidden"} {
			err := store.Put(ctx, bad, profile)
			assert.ErrorIs(t, err, domain.ErrInvalidSchemaName, "Put(%q)", bad)
		}
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrSchemaNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		// Setup
		err := store.Put(ctx, name, profile)
		require.NoError(t, err)

		// Delete
		err = store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		// Verify gone
		_, err = store.Get(ctx, name)
		assert.ErrorIs(t, err, domain.ErrSchemaNotFound, "Get after Delete should return ErrSchemaNotFound")

		// Deleting again is a no-op
		assert.NoError(t, store.Delete(ctx, name))
	})

	t.Run("List", func(t *testing.T) {
		// Setup: Create 2 schemas
		id1 := name + "-b"
		id2 := name + "-a"
		_ = store.Put(ctx, id1, profile)
		_ = store.Put(ctx, id2, profile)

		// Ensure cleanup
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
		assert.IsIncreasing(t, names, "List should be sorted")
	})
}
