package domain

import "context"

type ctxKey int

const (
	traceIDKey ctxKey = iota
	sourceKey
)

// WithTraceID returns a context carrying the request correlation id.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIDKey, id)
}

// TraceID returns the correlation id stored in ctx, if any.
func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey).(string)
	return id
}

// WithSource labels the caller that triggered a validation.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey, source)
}

// Source returns the caller label stored in ctx, defaulting to SourceLibrary.
func Source(ctx context.Context) string {
	if s, ok := ctx.Value(sourceKey).(string); ok && s != "" {
		return s
	}
	return SourceLibrary
}
