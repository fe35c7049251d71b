package storage

import "context"

type ctxKey struct{}

// NewContext returns a context carrying the backend. Services attach it
// before record deletes so model-level cascade hooks can reach storage.
func NewContext(ctx context.Context, b Backend) context.Context {
	return context.WithValue(ctx, ctxKey{}, b)
}

// FromContext extracts the backend placed by NewContext.
func FromContext(ctx context.Context) (Backend, bool) {
	b, ok := ctx.Value(ctxKey{}).(Backend)
	return b, ok
}
