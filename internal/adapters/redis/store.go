package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/schema"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces schema keys.
const DefaultPrefix = "conform:schema:"

// Store implements ports.SchemaStore using Redis.
// Schemas are stored as order-preserving JSON documents.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for stored schemas.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for schemas.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(name string) string {
	return s.prefix + name
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Put persists the schema to Redis.
func (s *Store) Put(ctx context.Context, name string, node *schema.Node) error {
	if err := domain.ValidateSchemaName(name); err != nil {
		return err
	}
	if node == nil {
		node = schema.Fields()
	}

	data, err := node.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	pipe := s.client.TxPipeline()

	// 1. Save JSON with TTL (0 means no expiration)
	pipe.Set(ctx, s.key(name), data, s.ttl)

	// 2. Add to Index (ZSET)
	// Score = Now + TTL. If TTL = 0, Score = +Inf (approx).
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: name,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Get retrieves the schema from Redis.
func (s *Store) Get(ctx context.Context, name string) (*schema.Node, error) {
	val, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrSchemaNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	node, err := schema.Parse(val)
	if err != nil {
		return nil, fmt.Errorf("failed to decode schema %s: %w", name, err)
	}
	return node, nil
}

// Delete removes the schema.
func (s *Store) Delete(ctx context.Context, name string) error {
	pipe := s.client.TxPipeline()

	pipe.Del(ctx, s.key(name))
	pipe.ZRem(ctx, s.indexKey(), name)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// List returns stored schema names in ascending order.
// Expired entries are pruned from the index lazily.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())

	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired schemas: %w", err)
	}

	names, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Ping checks the connection to Redis.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
