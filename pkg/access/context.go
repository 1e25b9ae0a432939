package access

import "context"

// ContextKey is the context key for the access level.
var ContextKey = &struct{ string }{"access"}

// FromContext returns the access level from the context.
func FromContext(ctx context.Context) Level {
	if l, ok := ctx.Value(ContextKey).(Level); ok {
		return l
	}

	return -1
}

// WithContext returns a new context with the access level.
func WithContext(ctx context.Context, l Level) context.Context {
	return context.WithValue(ctx, ContextKey, l)
}
