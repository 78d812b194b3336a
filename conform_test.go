package conform_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/aretw0/conform"
	"github.com/aretw0/conform/pkg/adapters/memory"
	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cookProfile() *schema.Node {
	return schema.Fields(
		schema.F("name", schema.Type(schema.KindString), schema.Required()),
		schema.F("stages", schema.Type(schema.KindArray), schema.MinSize(1), schema.Template(schema.Fields(
			schema.F("time_sec", schema.Type(schema.KindInteger), schema.Min(0), schema.Max(1000), schema.Required()),
		))),
	)
}

func TestEngine_Validate(t *testing.T) {
	eng, err := conform.New()
	require.NoError(t, err)

	ctx := context.Background()
	assert.True(t, eng.Validate(ctx, map[string]any{
		"name":   "rice",
		"stages": []any{map[string]any{"time_sec": 600}},
	}, cookProfile()))
	assert.False(t, eng.Validate(ctx, map[string]any{
		"name":   "rice",
		"stages": []any{map[string]any{"time_sec": 1500}},
	}, cookProfile()))
}

func TestEngine_ValidateNamed(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Put(context.Background(), "cook", cookProfile()))

	eng, err := conform.New(conform.WithStore(store))
	require.NoError(t, err)
	assert.Same(t, store, eng.Store())

	ok, err := eng.ValidateNamed(context.Background(), "cook", map[string]any{"name": "x", "stages": []any{}})
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = eng.ValidateNamed(context.Background(), "missing", map[string]any{})
	assert.ErrorIs(t, err, domain.ErrSchemaNotFound)
	assert.Contains(t, err.Error(), `"missing"`)
}

func TestEngine_Hooks(t *testing.T) {
	var events []*domain.ValidationEvent
	hooks := domain.ValidationHooks{
		OnValidate: func(ctx context.Context, e *domain.ValidationEvent) {
			events = append(events, e)
		},
	}

	store := memory.NewStore()
	require.NoError(t, store.Put(context.Background(), "cook", cookProfile()))
	eng, err := conform.New(conform.WithHooks(hooks), conform.WithStore(store))
	require.NoError(t, err)

	ctx := domain.WithSource(domain.WithTraceID(context.Background(), "trace-1"), domain.SourceHTTP)
	eng.Validate(ctx, map[string]any{}, cookProfile())
	_, err = eng.ValidateNamed(ctx, "cook", map[string]any{"name": "x", "stages": []any{map[string]any{"time_sec": 1}}})
	require.NoError(t, err)

	// One event per top-level call, never per nested template.
	require.Len(t, events, 2)

	assert.False(t, events[0].Valid)
	assert.Equal(t, "", events[0].SchemaName)
	assert.Equal(t, domain.EventValidate, events[0].Type)
	assert.Equal(t, "trace-1", events[0].TraceID)
	assert.Equal(t, domain.SourceHTTP, events[0].Source)

	assert.True(t, events[1].Valid)
	assert.Equal(t, "cook", events[1].SchemaName)

	// Failed lookups never reach the matcher.
	_, _ = eng.ValidateNamed(ctx, "missing", nil)
	assert.Len(t, events, 2)
}

func TestEngine_MaxDepth(t *testing.T) {
	_, err := conform.New(conform.WithMaxDepth(-1))
	assert.Error(t, err)

	eng, err := conform.New(conform.WithMaxDepth(1))
	require.NoError(t, err)

	nested := schema.Fields(schema.F("a", schema.Template(schema.Fields(
		schema.F("b", schema.Template(schema.Fields())),
	))))
	subject := map[string]any{"a": map[string]any{"b": map[string]any{}}}

	assert.False(t, eng.Validate(context.Background(), subject, nested))

	unbounded, err := conform.New()
	require.NoError(t, err)
	assert.True(t, unbounded.Validate(context.Background(), subject, nested))
}

func TestEngine_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	eng, err := conform.New(conform.WithLogger(logger))
	require.NoError(t, err)
	assert.Same(t, logger, eng.Logger())

	eng.Validate(context.Background(), map[string]any{"name": 5}, cookProfile())

	out := buf.String()
	assert.Contains(t, out, "schema rule failed")
	assert.Contains(t, out, "field=name")
	assert.Contains(t, out, "validation finished")
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, strings.TrimSpace(conform.Version))
}
