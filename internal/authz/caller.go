package authz

import (
	"context"

	"github.com/google/uuid"
)

// Caller is the authenticated identity behind a request.
type Caller struct {
	UserID uuid.UUID
	Role   Role
}

type callerKey struct{}

// WithCaller returns a copy of ctx carrying the resolved caller.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFrom returns the caller stored in ctx, if any.
func CallerFrom(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey{}).(Caller)
	return c, ok
}
