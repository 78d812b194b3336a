package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/conform/internal/adapters/redis"
	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/ports"
	"github.com/aretw0/conform/pkg/schema"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := setup(t)

	store := redis.NewFromClient(client)
	ports.RunSchemaStoreContract(t, store)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := setup(t)
	ctx := context.Background()

	store := redis.NewFromClient(client, redis.WithPrefix("test:"))
	require.NoError(t, store.Put(ctx, "cook", schema.Fields(schema.F("b"), schema.F("a"))))

	assert.True(t, mr.Exists("test:cook"))
	raw, err := mr.Get("test:cook")
	require.NoError(t, err)
	assert.Equal(t, `{"b":{},"a":{}}`, raw)

	members, err := mr.ZMembers("test:index")
	require.NoError(t, err)
	assert.Equal(t, []string{"cook"}, members)
}

func TestRedisStore_TTL(t *testing.T) {
	mr, client := setup(t)
	ctx := context.Background()

	store := redis.NewFromClient(client, redis.WithTTL(time.Minute))
	require.NoError(t, store.Put(ctx, "short", schema.Fields()))
	assert.Equal(t, time.Minute, mr.TTL(redis.DefaultPrefix+"short"))

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "short")
	assert.ErrorIs(t, err, domain.ErrSchemaNotFound)
}

func TestRedisStore_CorruptValue(t *testing.T) {
	mr, client := setup(t)

	require.NoError(t, mr.Set(redis.DefaultPrefix+"bad", `{"a": {"min": "x"}}`))

	store := redis.NewFromClient(client)
	_, err := store.Get(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSchemaNotFound)
}

func TestRedisStore_Ping(t *testing.T) {
	_, client := setup(t)
	assert.NoError(t, redis.NewFromClient(client).Ping(context.Background()))
}
