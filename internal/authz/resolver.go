package authz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain"
	"go.uber.org/zap"
)

// ErrInvalidCredential is returned when the identity gateway rejects the
// presented credential.
var ErrInvalidCredential = errors.New("invalid or missing credential")

// IdentityGateway authenticates a raw credential and reports who is calling.
type IdentityGateway interface {
	ResolveCaller(ctx context.Context, credential string) (Caller, error)
}

// Resolver calls the identity gateway at most once per request and bounds
// the call with a timeout.
type Resolver struct {
	gateway IdentityGateway
	timeout time.Duration
	logger  *zap.Logger
}

// NewResolver creates a new Resolver.
func NewResolver(gateway IdentityGateway, timeout time.Duration, logger *zap.Logger) *Resolver {
	return &Resolver{gateway: gateway, timeout: timeout, logger: logger}
}

// Resolve returns a context carrying the caller. A caller already present in
// ctx is reused without contacting the gateway.
func (r *Resolver) Resolve(ctx context.Context, credential string) (context.Context, Caller, error) {
	if c, ok := CallerFrom(ctx); ok {
		return ctx, c, nil
	}

	callCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	caller, err := r.gateway.ResolveCaller(callCtx, credential)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			r.logger.Warn("identity gateway timed out", zap.Duration("timeout", r.timeout))
			return ctx, Caller{}, domain.NewUpstreamError("identity gateway", err)
		}
		return ctx, Caller{}, err
	}
	if !caller.Role.IsValid() {
		return ctx, Caller{}, fmt.Errorf("%w: unknown role %q", ErrInvalidCredential, caller.Role)
	}

	return WithCaller(ctx, caller), caller, nil
}
