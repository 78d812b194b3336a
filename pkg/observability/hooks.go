package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/conform/pkg/domain"
)

// LoggingHooks returns validation hooks that log every event at info level.
func LoggingHooks(logger *slog.Logger) domain.ValidationHooks {
	return domain.ValidationHooks{
		OnValidate: func(ctx context.Context, e *domain.ValidationEvent) {
			attrs := []any{
				"source", e.Source,
				"valid", e.Valid,
				"duration", e.Duration,
			}
			if e.SchemaName != "" {
				attrs = append(attrs, "schema", e.SchemaName)
			}
			if e.TraceID != "" {
				attrs = append(attrs, "trace_id", e.TraceID)
			}
			logger.InfoContext(ctx, "validation", attrs...)
		},
	}
}

// ChainHooks combines hooks so each event reaches all of them in order.
func ChainHooks(hooks ...domain.ValidationHooks) domain.ValidationHooks {
	var fns []func(context.Context, *domain.ValidationEvent)
	for _, h := range hooks {
		if h.OnValidate != nil {
			fns = append(fns, h.OnValidate)
		}
	}
	if len(fns) == 0 {
		return domain.ValidationHooks{}
	}
	return domain.ValidationHooks{
		OnValidate: func(ctx context.Context, e *domain.ValidationEvent) {
			for _, fn := range fns {
				fn(ctx, e)
			}
		},
	}
}
