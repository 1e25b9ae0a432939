package proto

import "context"

// User is an interface representing an authenticated user.
type User interface {
	// ID returns the user's ID.
	ID() int64
	// ExternalID returns the identity provider's id for the user.
	ExternalID() string
	// Email returns the user's primary email.
	Email() string
	// DisplayName returns the user's display name.
	DisplayName() string
}

// ContextKeyUser is the context key for the user.
var ContextKeyUser = &struct{ string }{"user"}

// UserFromContext returns the user from the context.
func UserFromContext(ctx context.Context) User {
	if u, ok := ctx.Value(ContextKeyUser).(User); ok {
		return u
	}
	return nil
}

// WithUserContext returns a new context with the user.
func WithUserContext(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, ContextKeyUser, u)
}
