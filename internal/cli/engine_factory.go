package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/conform"
	"github.com/aretw0/conform/internal/adapters/file"
	"github.com/aretw0/conform/internal/adapters/redis"
	"github.com/aretw0/conform/internal/config"
	"github.com/aretw0/conform/internal/logging"
	"github.com/aretw0/conform/pkg/adapters/memory"
	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/persistence/middleware"
	"github.com/aretw0/conform/pkg/ports"
	"github.com/aretw0/conform/pkg/schema"
)

const redisPingTimeout = 3 * time.Second

// CreateLogger configures the application logger from cfg.
// Logs go to Stderr so that Stdout stays free for results and MCP JSON-RPC.
func CreateLogger(cfg config.Log) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	return logging.NewWithFormat(os.Stderr, level, cfg.Format)
}

// OpenStore builds the schema store selected by cfg.Driver and wraps it with
// the cache and read-only middlewares when configured.
// The returned close func releases driver resources and is never nil.
func OpenStore(ctx context.Context, cfg config.Store) (ports.SchemaStore, func() error, error) {
	store, closeStore, err := openDriver(ctx, cfg)
	if err != nil {
		return nil, closeStore, err
	}

	var mws []middleware.Middleware
	if cfg.ReadOnly {
		mws = append(mws, middleware.NewReadOnlyMiddleware())
	}
	if cfg.CacheTTL > 0 {
		mws = append(mws, middleware.NewCacheMiddleware(cfg.CacheTTL))
	}
	return middleware.Chain(store, mws...), closeStore, nil
}

func openDriver(ctx context.Context, cfg config.Store) (ports.SchemaStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewStore(), noop, nil
	case config.DriverFile:
		return file.New(cfg.Dir), noop, nil
	case config.DriverRedis:
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			store.Close()
			return nil, noop, fmt.Errorf("error connecting to redis at %s: %w", cfg.Redis.Addr, err)
		}
		return store, store.Close, nil
	default:
		return nil, noop, fmt.Errorf("%w: unknown store driver %q", config.ErrInvalidStoreConfig, cfg.Driver)
	}
}

// CreateEngine initializes a conform engine with standard CLI conventions.
func CreateEngine(cfg *config.Config, store ports.SchemaStore, logger *slog.Logger, hooks domain.ValidationHooks) (*conform.Engine, error) {
	engine, err := conform.New(
		conform.WithStore(store),
		conform.WithLogger(logger),
		conform.WithHooks(hooks),
		conform.WithMaxDepth(cfg.Validation.MaxDepth),
	)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}

// DecodeOptions returns the schema decoder options implied by cfg.
func DecodeOptions(cfg *config.Config) []schema.DecodeOption {
	if cfg.Validation.StrictRules {
		return []schema.DecodeOption{schema.WithStrictRules()}
	}
	return nil
}
