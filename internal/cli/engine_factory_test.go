package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/conform/internal/adapters/file"
	"github.com/aretw0/conform/internal/adapters/redis"
	"github.com/aretw0/conform/internal/config"
	"github.com/aretw0/conform/pkg/adapters/memory"
	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		store, closeFn, err := OpenStore(ctx, config.Store{Driver: config.DriverMemory})
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &memory.Store{}, store)
	})

	t.Run("file", func(t *testing.T) {
		store, closeFn, err := OpenStore(ctx, config.Store{Driver: config.DriverFile, Dir: t.TempDir()})
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &file.Store{}, store)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := config.Default().Store
		cfg.Driver = config.DriverRedis
		cfg.Redis.Addr = mr.Addr()

		store, closeFn, err := OpenStore(ctx, cfg)
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &redis.Store{}, store)

		require.NoError(t, store.Put(ctx, "a", schema.Fields()))
		assert.True(t, mr.Exists(cfg.Redis.Prefix+"a"))
	})

	t.Run("redis unreachable", func(t *testing.T) {
		cfg := config.Default().Store
		cfg.Driver = config.DriverRedis
		cfg.Redis.Addr = "127.0.0.1:1"

		_, closeFn, err := OpenStore(ctx, cfg)
		require.Error(t, err)
		assert.NotNil(t, closeFn)
		assert.Contains(t, err.Error(), "127.0.0.1:1")
	})

	t.Run("read-only with cache", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, file.New(dir).Put(ctx, "stage", schema.Fields(schema.F("a", schema.Required()))))

		store, closeFn, err := OpenStore(ctx, config.Store{Driver: config.DriverFile, Dir: dir, ReadOnly: true, CacheTTL: time.Minute})
		require.NoError(t, err)
		defer closeFn()

		node, err := store.Get(ctx, "stage")
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, node.Names())
		assert.True(t, errors.Is(store.Put(ctx, "other", schema.Fields()), domain.ErrReadOnlyStore))
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, _, err := OpenStore(ctx, config.Store{Driver: "etcd"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, config.ErrInvalidStoreConfig))
	})
}

func TestCreateLogger(t *testing.T) {
	logger, err := CreateLogger(config.Log{Level: "debug", Format: "json"})
	require.NoError(t, err)
	assert.True(t, logger.Enabled(context.Background(), -4))

	_, err = CreateLogger(config.Log{Level: "loud"})
	assert.Error(t, err)

	_, err = CreateLogger(config.Log{Level: "info", Format: "xml"})
	assert.Error(t, err)
}

func TestCreateEngine(t *testing.T) {
	cfg := config.Default()
	cfg.Validation.MaxDepth = 1

	store := memory.NewStore()
	var fired int
	engine, err := CreateEngine(cfg, store, nil, domain.ValidationHooks{
		OnValidate: func(context.Context, *domain.ValidationEvent) { fired++ },
	})
	require.NoError(t, err)
	assert.Same(t, store, engine.Store())

	inner := schema.Fields(schema.F("b", schema.Template(schema.Fields(schema.F("c", schema.Required())))))
	node := schema.Fields(schema.F("a", schema.Template(inner)))
	subject := map[string]any{"a": map[string]any{"b": map[string]any{"c": 1}}}
	assert.False(t, engine.Validate(context.Background(), subject, node), "two levels exceed max depth 1")
	assert.Equal(t, 1, fired)

	cfg.Validation.MaxDepth = -1
	_, err = CreateEngine(cfg, store, nil, domain.ValidationHooks{})
	assert.Error(t, err)
}

func TestDecodeOptions(t *testing.T) {
	cfg := config.Default()
	assert.Empty(t, DecodeOptions(cfg))

	cfg.Validation.StrictRules = true
	_, err := schema.Parse([]byte(`a: {pattern: x}`), DecodeOptions(cfg)...)
	assert.ErrorIs(t, err, schema.ErrUnknownRule)
}
