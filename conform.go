package conform

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/conform/pkg/adapters/memory"
	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/ports"
	"github.com/aretw0/conform/pkg/schema"
)

// Engine is the high-level entry point for the conform library.
// It pairs a schema Validator with a SchemaStore and reports every
// top-level validation to the registered hooks.
type Engine struct {
	validator *schema.Validator
	store     ports.SchemaStore
	hooks     domain.ValidationHooks
	logger    *slog.Logger
	maxDepth  int
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithStore injects the SchemaStore used by ValidateNamed.
// Defaults to an empty in-memory store.
func WithStore(store ports.SchemaStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.ValidationHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithMaxDepth bounds template recursion. Zero means unbounded.
func WithMaxDepth(n int) Option {
	return func(e *Engine) {
		e.maxDepth = n
	}
}

// New initializes a new Engine.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.maxDepth < 0 {
		return nil, fmt.Errorf("max depth must not be negative, got %d", eng.maxDepth)
	}
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}

	eng.validator = schema.New(
		schema.WithLogger(eng.logger),
		schema.WithMaxDepth(eng.maxDepth),
	)
	return eng, nil
}

// Validate reports whether subject conforms to node.
func (e *Engine) Validate(ctx context.Context, subject any, node *schema.Node) bool {
	return e.validate(ctx, "", subject, node)
}

// ValidateNamed loads the schema stored under name and validates subject against it.
// It returns domain.ErrSchemaNotFound when no such schema exists.
func (e *Engine) ValidateNamed(ctx context.Context, name string, subject any) (bool, error) {
	node, err := e.store.Get(ctx, name)
	if err != nil {
		return false, fmt.Errorf("failed to load schema %q: %w", name, err)
	}
	return e.validate(ctx, name, subject, node), nil
}

func (e *Engine) validate(ctx context.Context, name string, subject any, node *schema.Node) bool {
	start := time.Now()
	valid := e.validator.ValidateAnySchema(subject, node)
	elapsed := time.Since(start)

	e.logger.DebugContext(ctx, "validation finished", "schema", name, "valid", valid, "duration", elapsed)

	if e.hooks.OnValidate != nil {
		e.hooks.OnValidate(ctx, &domain.ValidationEvent{
			EventBase: domain.EventBase{
				Timestamp: start,
				Type:      domain.EventValidate,
				TraceID:   domain.TraceID(ctx),
			},
			SchemaName: name,
			Source:     domain.Source(ctx),
			Valid:      valid,
			Duration:   elapsed,
		})
	}
	return valid
}

// Store returns the SchemaStore used by the engine.
func (e *Engine) Store() ports.SchemaStore {
	return e.store
}

// Validator returns the underlying schema Validator.
func (e *Engine) Validator() *schema.Validator {
	return e.validator
}

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}
